package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// First returns a single violation as "Field: tag", or "" when valid.
// Violations are reported in struct field order, so the message is
// stable for a given input.
func First(v interface{}) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	for _, fieldErr := range err.(validator.ValidationErrors) {
		return fieldErr.Field() + ": " + fieldErr.Tag()
	}
	return ""
}
