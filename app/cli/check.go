package cli

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/validate"
)

// The Check command validates forms and computes derived health values.
type Check struct {
	BMI struct {
		Weight float64 `arg:"" help:"Weight in kg."`
		Height float64 `arg:"" help:"Height in cm."`
	} `kong:"cmd,name='bmi',help='Compute the body mass index.'"`
	Age struct {
		BirthDate string `arg:"" help:"Birth date as YYYY-MM-DD."`
	} `kong:"cmd,help='Compute the age from a birth date.'"`
	Register struct {
		Name            string `help:"Full name."`
		Phone           string `help:"Mobile phone number."`
		Password        string `help:"Password."`
		ConfirmPassword string `help:"Password confirmation."`
	} `kong:"cmd,help='Validate a registration form.'"`
	Health struct {
		Weight      float64 `help:"Weight in kg."`
		Height      float64 `help:"Height in cm."`
		Systolic    int     `help:"Systolic blood pressure in mmHg."`
		Diastolic   int     `help:"Diastolic blood pressure in mmHg."`
		HeartRate   int     `help:"Heart rate in bpm."`
		BloodSugar  float64 `help:"Blood sugar in mmol/L."`
		Temperature float64 `help:"Body temperature in °C."`
	} `kong:"cmd,help='Validate a health measurement.'"`
}

// Run the check command.
func (c *Check) Run(kctx *kong.Context, appCtx *actx.Context) error {
	switch subcommand(kctx) {
	case "bmi":
		res := validate.BMI(c.BMI.Weight, c.BMI.Height)
		if !res.IsValid {
			return errors.New("weight and height don't result in a plausible BMI")
		}
		fmt.Fprintf(appCtx.Stdout, "%.1f %s\n", res.BMI, res.Category)
	case "age":
		birth, err := time.ParseInLocation(time.DateOnly, c.Age.BirthDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid birth date '%s': expected format YYYY-MM-DD", c.Age.BirthDate)
		}
		now := time.Now()
		if appCtx.Now != nil {
			now = appCtx.Now()
		}
		if !validate.ValidAgeAt(birth, now) {
			return fmt.Errorf("birth date '%s' is out of range", c.Age.BirthDate)
		}
		fmt.Fprintln(appCtx.Stdout, validate.Age(birth, now))
	case "register":
		return checkForm(appCtx, validate.RegisterForm{
			Name:            c.Register.Name,
			Phone:           c.Register.Phone,
			Password:        c.Register.Password,
			ConfirmPassword: c.Register.ConfirmPassword,
		})
	case "health":
		return checkForm(appCtx, validate.HealthMetricsForm{
			Weight:      c.Health.Weight,
			Height:      c.Health.Height,
			Systolic:    c.Health.Systolic,
			Diastolic:   c.Health.Diastolic,
			HeartRate:   c.Health.HeartRate,
			BloodSugar:  c.Health.BloodSugar,
			Temperature: c.Health.Temperature,
		})
	}

	return nil
}

// checkForm prints the field errors of form, if any.
func checkForm(appCtx *actx.Context, form any) error {
	err := validate.Struct(form)
	if err == nil {
		fmt.Fprintln(appCtx.Stdout, "ok")
		return nil
	}

	var verrs validate.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	data := make([][]string, len(fields))
	for i, f := range fields {
		data[i] = []string{f, verrs[f]}
	}
	renderTable(appCtx.Stdout, []string{"Field", "Error"}, data)

	return fmt.Errorf("form has %d invalid fields", len(fields))
}
