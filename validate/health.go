package validate

import (
	"math"
	"time"
)

// MaxAge is the oldest valid age in years.
const MaxAge = 150

// Age returns the age in whole years at now of someone born at birth. A
// birthday not yet reached in now's year doesn't count.
func Age(birth, now time.Time) int {
	now = now.In(birth.Location())
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// ValidAge returns true if birth is not in the future, and the age today is
// between 0 and MaxAge inclusive.
func ValidAge(birth time.Time) bool {
	return ValidAgeAt(birth, time.Now())
}

// ValidAgeAt is ValidAge evaluated at now.
func ValidAgeAt(birth, now time.Time) bool {
	if birth.After(now) {
		return false
	}
	age := Age(birth, now)
	return age >= 0 && age <= MaxAge
}

// BMICategory is the weight class of a BMI value.
type BMICategory string

// BMI categories.
const (
	Underweight BMICategory = "underweight"
	Normal      BMICategory = "normal"
	Overweight  BMICategory = "overweight"
	Obese       BMICategory = "obese"
)

// Label returns the category as shown in the app.
func (c BMICategory) Label() string {
	switch c {
	case Underweight:
		return "偏瘦"
	case Normal:
		return "正常"
	case Overweight:
		return "超重"
	case Obese:
		return "肥胖"
	}
	return ""
}

// BMIResult is the outcome of a BMI computation.
type BMIResult struct {
	IsValid  bool        `json:"isValid"`
	BMI      float64     `json:"bmi,omitempty"`
	Category BMICategory `json:"category,omitempty"`
}

// BMI computes the body mass index from weight in kg and height in cm,
// rounded to one decimal. The result is valid only for positive inputs and a
// BMI between 10 and 100. Inputs whose BMI isn't a finite number yield the
// zero result.
func BMI(weightKg, heightCm float64) BMIResult {
	if !(weightKg > 0) || !(heightCm > 0) ||
		math.IsInf(weightKg, 0) || math.IsInf(heightCm, 0) {
		return BMIResult{}
	}

	h := heightCm / 100
	raw := weightKg / (h * h)
	if math.IsInf(raw, 0) || math.IsNaN(raw) {
		return BMIResult{}
	}
	bmi := math.Round(raw*10) / 10

	var cat BMICategory
	switch {
	case bmi < 18.5:
		cat = Underweight
	case bmi < 24:
		cat = Normal
	case bmi < 28:
		cat = Overweight
	default:
		cat = Obese
	}

	return BMIResult{
		IsValid:  bmi >= 10 && bmi <= 100,
		BMI:      bmi,
		Category: cat,
	}
}
