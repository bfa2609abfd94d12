package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBranchMismatch     = errors.New("branch mismatch")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Duplicate email on a unique index
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Outbound mail failures
	ErrMailDelivery = errors.New("mail delivery failed")
)

// Student errors
var (
	ErrStudentNotFound    error = NewResourceNotFoundError("Student not found")
	ErrStudentEmailExists error = NewCustomError(ErrEmailAlreadyExists, "A student with this email already exists")
)

// Course errors
var (
	ErrCourseNotFound error = NewResourceNotFoundError("Course not found")
)

// User errors
var (
	ErrUserNotFound    error = NewResourceNotFoundError("User not found")
	ErrUserEmailExists error = NewCustomError(ErrEmailAlreadyExists, "A user with this email already exists")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) *CustomError {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) *CustomError {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation error bound to a request field
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// MessageOf returns the user facing message carried by err, or fallback
func MessageOf(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// FieldOf returns the request field a validation error refers to
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
