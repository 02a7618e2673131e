// Package validator wraps go-playground/validator with json tag names and
// the custom rules used by the booking form.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Phone numbers: at least 10 digits once separators are stripped.
	validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		digits := 0
		for _, r := range fl.Field().String() {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		return digits >= 10
	})
}

// Validate validates a struct and returns a map of field errors, or nil when
// everything passes.
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Please enter a valid email address"
		case "min":
			errors[field] = fmt.Sprintf("Must be at least %s characters", err.Param())
		case "phone10":
			errors[field] = "Please enter a valid phone number"
		default:
			errors[field] = "Invalid value"
		}
	}
	return errors
}
