// Package apperr defines the error kinds shared by every service and their
// mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match with errors.Is.
var (
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrConfiguration = errors.New("configuration")
	ErrInvalidInput  = errors.New("invalid input")
)

// Error is a classified, caller-facing error.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Unwrap exposes the kind so errors.Is works against the sentinels above.
func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the sentinel this error was classified as.
func (e *Error) Kind() error {
	return e.kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Conflict reports a state that does not allow the requested transition.
func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

// NotFound reports a missing (or no longer active) resource.
func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

// Forbidden reports an identity acting outside its cafe.
func Forbidden(format string, args ...interface{}) error {
	return newError(ErrForbidden, format, args...)
}

// Configuration reports corrupt or unrecognized stored configuration.
func Configuration(format string, args ...interface{}) error {
	return newError(ErrConfiguration, format, args...)
}

// InvalidInput reports a request that fails validation.
func InvalidInput(format string, args ...interface{}) error {
	return newError(ErrInvalidInput, format, args...)
}

// HTTPStatus maps an error onto the status code handlers should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a caller. Unclassified and
// configuration errors are hidden behind a generic message.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && !errors.Is(err, ErrConfiguration) {
		return appErr.message
	}
	return "internal error"
}
