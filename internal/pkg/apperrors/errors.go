package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Admin user errors
var (
	ErrAdminUserNotFound     = errors.New("admin user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Content errors
var (
	ErrProfessorNotFound   = errors.New("professor not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrPublicationNotFound = errors.New("publication not found")
	ErrLabInfoNotFound     = errors.New("lab info not found")
)

// Admin backend errors
var (
	ErrUnknownResource = errors.New("unknown admin resource")
	ErrCreateDisabled  = errors.New("creating records is disabled for this resource")
	ErrDeleteDisabled  = errors.New("deleting records is disabled for this resource")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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
