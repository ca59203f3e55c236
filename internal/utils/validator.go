// internal/utils/validator.go
package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "request", Message: err.Error()}}
	}

	errors := make([]ValidationError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(fieldErr.Field()),
			Message: validationMessage(fieldErr),
		})
	}
	return errors
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
