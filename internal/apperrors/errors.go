package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of a business error.
type Kind string

const (
	KindNotFound         Kind = "NotFound"
	KindConflict         Kind = "Conflict"
	KindInvalidOperation Kind = "InvalidOperation"
	KindValidation       Kind = "ValidationError"
	KindInternal         Kind = "InternalError"
)

// Sentinels for errors.Is checks against a kind.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrConflict         = &Error{Kind: KindConflict}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrInternal         = &Error{Kind: KindInternal}
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// Error is the error type returned by the service layer.
type Error struct {
	Kind    Kind         `json:"error"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// HTTPStatus maps the kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidOperation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message, details string) *Error {
	return &Error{Kind: kind, Message: message, Details: details}
}

func NotFound(resource string, id any) *Error {
	return New(KindNotFound, resource+" not found", fmt.Sprintf("ID: %v", id))
}

func Conflict(message, details string) *Error {
	return New(KindConflict, message, details)
}

func InvalidOperation(message, details string) *Error {
	return New(KindInvalidOperation, message, details)
}

// Validation builds a validation error carrying the offending fields.
func Validation(fields ...FieldError) *Error {
	e := New(KindValidation, "validation failed", "")
	e.Fields = fields
	return e
}

func Internal(message string, err error) *Error {
	e := New(KindInternal, message, "")
	e.cause = err
	return e
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal error", err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
