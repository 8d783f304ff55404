package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers the custom binding validators and makes
// validation errors report JSON field names
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// danecode: a DANE geography code, 2 digits (department) or 5
	// digits (municipality)
	_ = v.RegisterValidation("danecode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 2 && len(code) != 5 {
			return false
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	// stratum: Colombian socioeconomic stratum, 1 through 6
	_ = v.RegisterValidation("stratum", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= 1 && n <= 6
	})
}

// FormatValidationErrors flattens validator errors into a field->message
// map for the response envelope
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = err.Error()
		return out
	}

	for _, e := range validationErrors {
		out[e.Field()] = validationMessage(e)
	}
	return out
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "uuid":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	case "danecode":
		return "Must be a 2 or 5 digit DANE code"
	case "stratum":
		return "Must be a stratum between 1 and 6"
	default:
		return fmt.Sprintf("Failed validation: %s", e.Tag())
	}
}
