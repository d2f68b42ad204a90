package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so handlers can map it to an HTTP status and
// clients can branch on it without parsing messages.
type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindAuthentication Kind = "authentication_error"
	KindAuthorization  Kind = "authorization_error"
	KindNotFound       Kind = "not_found"
	KindIntegrity      Kind = "integrity_error"
	KindInternal       Kind = "internal_error"
)

// Error carries a Kind alongside a human-readable message and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

func Authentication(format string, args ...interface{}) *Error {
	return New(KindAuthentication, format, args...)
}

func Authorization(format string, args ...interface{}) *Error {
	return New(KindAuthorization, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func Integrity(format string, args ...interface{}) *Error {
	return New(KindIntegrity, format, args...)
}

// KindOf extracts the Kind from err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code the REST surface uses for it.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindIntegrity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
