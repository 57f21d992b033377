// Package validate declares the validation rules of the app forms, and the
// health computations derived from form values.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Errors maps form field names to a user-facing message. Only the first
// failed rule of each field is reported.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = fmt.Sprintf("%s: %s", f, e[f])
	}

	return strings.Join(msgs, "; ")
}

var (
	validate = newValidator()
	phoneRx  = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by the name the UI knows them by.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "cnphone", func(fl validator.FieldLevel) bool {
		return phoneRx.MatchString(fl.Field().String())
	})
	mustRegister(v, "age", func(fl validator.FieldLevel) bool {
		birth, ok := fl.Field().Interface().(time.Time)
		return ok && ValidAge(birth)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Struct validates a form struct, or a pointer to one. It returns Errors if any
// rule fails.
func Struct(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	typ := reflect.TypeOf(form)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	out := Errors{}
	for _, fe := range verrs {
		field := fieldName(fe.Field())
		if _, ok := out[field]; ok {
			continue
		}
		out[field] = message(typ, fe)
	}

	return out
}

// message returns the message of the field's `msg` tag, or a generic one
// for the failed rule. Missing values always get the generic message.
func message(typ reflect.Type, fe validator.FieldError) string {
	if fe.Tag() != "required" {
		if f, ok := typ.FieldByName(fieldName(fe.StructField())); ok {
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}

	name := fieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// fieldName strips the element index from the name of a slice or map element,
// e.g. "tags[0]" becomes "tags".
func fieldName(name string) string {
	name, _, _ = strings.Cut(name, "[")
	return name
}
