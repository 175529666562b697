package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("resource not found")
	ErrBadRequest    = errors.New("bad request")
	ErrConflict      = errors.New("conflict")
	ErrInternal      = errors.New("internal server error")
	ErrValidation    = errors.New("validation error")
	ErrUnprocessable = errors.New("unprocessable entity")
	ErrTooLarge      = errors.New("payload too large")

	// Domain sentinels. Both wrap ErrConflict so callers can match either.
	ErrDuplicateBank = fmt.Errorf("duplicate bank: %w", ErrConflict)
	ErrDuplicatePlan = fmt.Errorf("duplicate plan: %w", ErrConflict)
)

// AppError wraps errors with HTTP status and user-friendly message
type AppError struct {
	Err        error  // Original error (for logging)
	Message    string // User-friendly message
	StatusCode int    // HTTP status code
	Field      string // Optional field name for validation errors
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for common errors

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func ValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Field:      field,
	}
}

// Unprocessable is used when the request is well formed but the domain rejects it,
// e.g. a principal outside the plan's range or no rate condition for the tenure.
func Unprocessable(err error, message string) *AppError {
	if err == nil {
		err = ErrUnprocessable
	}
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func DuplicateBank(name string) *AppError {
	return &AppError{
		Err:        ErrDuplicateBank,
		Message:    fmt.Sprintf("bank %q already exists", name),
		StatusCode: http.StatusConflict,
		Field:      "name",
	}
}

func DuplicatePlan(name string) *AppError {
	return &AppError{
		Err:        ErrDuplicatePlan,
		Message:    fmt.Sprintf("plan %q already exists for this bank", name),
		StatusCode: http.StatusConflict,
		Field:      "planName",
	}
}

func TooLarge(limit int64) *AppError {
	return &AppError{
		Err:        ErrTooLarge,
		Message:    fmt.Sprintf("file exceeds maximum size of %d bytes", limit),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}

func Wrap(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// GetStatusCode extracts HTTP status from error, defaults to 500
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Check sentinel errors
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// GetMessage extracts user message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
