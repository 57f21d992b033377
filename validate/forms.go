package validate

import "time"

// LoginForm is submitted to sign in with a phone number.
type LoginForm struct {
	Phone    string `json:"phone" validate:"required,cnphone" msg:"Enter a valid mobile phone number"`
	Password string `json:"password" validate:"required,min=6,max=20" msg:"Password must be 6 to 20 characters"`
}

// RegisterForm is submitted to create an account.
type RegisterForm struct {
	Name            string `json:"name" validate:"required,min=2,max=20" msg:"Name must be 2 to 20 characters"`
	Phone           string `json:"phone" validate:"required,cnphone" msg:"Enter a valid mobile phone number"`
	Password        string `json:"password" validate:"required,min=8,max=20,containsany=0123456789" msg:"Password must be 8 to 20 characters and contain a digit"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" msg:"Passwords do not match"`
}

// ResetPasswordForm is submitted with an SMS code to set a new password.
type ResetPasswordForm struct {
	Phone           string `json:"phone" validate:"required,cnphone" msg:"Enter a valid mobile phone number"`
	Code            string `json:"code" validate:"required,len=6,numeric" msg:"The verification code has 6 digits"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=20,containsany=0123456789" msg:"Password must be 8 to 20 characters and contain a digit"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword" msg:"Passwords do not match"`
}

// ProfileForm is submitted to edit the user profile.
type ProfileForm struct {
	Name      string    `json:"name" validate:"required,min=2,max=20" msg:"Name must be 2 to 20 characters"`
	Phone     string    `json:"phone" validate:"required,cnphone" msg:"Enter a valid mobile phone number"`
	Gender    string    `json:"gender" validate:"omitempty,oneof=male female"`
	BirthDate time.Time `json:"birthDate" validate:"required,age" msg:"Enter a valid birth date"`
}

// HealthMetricsForm is submitted to record a health measurement. Weight is in
// kg, height in cm, blood pressure in mmHg, blood sugar in mmol/L and body
// temperature in °C.
type HealthMetricsForm struct {
	Weight      float64 `json:"weight" validate:"required,gte=20,lte=300" msg:"Weight must be between 20 and 300 kg"`
	Height      float64 `json:"height" validate:"required,gte=50,lte=250" msg:"Height must be between 50 and 250 cm"`
	Systolic    int     `json:"systolic" validate:"required,gte=60,lte=250" msg:"Systolic pressure must be between 60 and 250 mmHg"`
	Diastolic   int     `json:"diastolic" validate:"required,gte=40,lte=150,ltfield=Systolic" msg:"Diastolic pressure must be between 40 and 150 mmHg, and lower than systolic"`
	HeartRate   int     `json:"heartRate" validate:"required,gte=30,lte=220" msg:"Heart rate must be between 30 and 220 bpm"`
	BloodSugar  float64 `json:"bloodSugar" validate:"omitempty,gte=1,lte=35" msg:"Blood sugar must be between 1 and 35 mmol/L"`
	Temperature float64 `json:"temperature" validate:"omitempty,gte=34,lte=43" msg:"Body temperature must be between 34 and 43 °C"`
}

// ReviewForm is submitted to review a caregiver after a service.
type ReviewForm struct {
	Rating  int      `json:"rating" validate:"required,gte=1,lte=5" msg:"Rating must be between 1 and 5 stars"`
	Content string   `json:"content" validate:"required,min=5,max=500" msg:"Review must be 5 to 500 characters"`
	Tags    []string `json:"tags" validate:"max=5,dive,required,max=10" msg:"Up to 5 tags of at most 10 characters"`
}
