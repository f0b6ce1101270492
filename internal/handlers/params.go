package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type GoogleCallbackQueryParams struct {
	Code  string `validate:"required,min=1"`
	State string
}

// describeValidationError turns the first failed field into a message naming the query parameter.
func describeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid query parameters"
	}

	field := validationErrs[0]
	name := strings.ToLower(field.Field())
	switch field.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s query parameter is required", name)
	default:
		return fmt.Sprintf("%s query parameter is invalid", name)
	}
}
