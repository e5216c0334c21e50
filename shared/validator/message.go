package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"

	"roombook/shared/failure"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"datetime":    "{field} must match the format {param}",
		"clock":       "{field} must be a time of day such as 2:00 PM",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must be at most {param} MB",
	}
)

func message(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

func fieldErrors(err error) []failure.FieldError {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		fields := make([]failure.FieldError, 0, len(valErrors))

		for _, valErr := range valErrors {
			fields = append(fields, failure.FieldError{
				Field:   valErr.Field(),
				Message: message(valErr),
			})
		}

		return fields
	}

	return []failure.FieldError{{Message: err.Error()}}
}
