package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrPropertyNotAvailable = errors.New("property not available")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// InvalidTransition is returned when a precondition on the current status is
// not met, including races resolved by a conditional update.
func InvalidTransition(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrInvalidTransition)
}

// PropertyNotAvailable is returned when a property refuses an offer operation:
// creation against a closed listing, or approval when it is already sold.
func PropertyNotAvailable(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrPropertyNotAvailable)
}

// StoreUnavailable is returned when the persistence layer exhausted its
// transient-failure retries. Callers may retry later; the request itself was
// valid.
func StoreUnavailable(err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "store unavailable, try again later",
		fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
