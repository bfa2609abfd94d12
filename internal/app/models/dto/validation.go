package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding error into an ErrorDetail
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		detail := NewErrorDetail(ErrorCodeValidationFailed, FormatFieldError(first)).WithField(first.Field())
		if len(verrs) > 1 {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = FormatFieldError(fe)
			}
			detail.WithDetails(fields)
		}
		return detail
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return NewErrorDetail(ErrorCodeValidationFailed, "Request body is required")
	case errors.As(err, &syntaxErr):
		return NewErrorDetail(ErrorCodeValidationFailed, "Request body is not valid JSON")
	case errors.As(err, &typeErr):
		return NewErrorDetail(ErrorCodeValidationFailed, fmt.Sprintf("%s has the wrong type", typeErr.Field)).WithField(typeErr.Field)
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
