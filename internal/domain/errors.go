// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so that the transport layer can translate it
// without knowing which component produced it.
type Kind uint8

const (
	// KindInternal is anything unanticipated. Its details never reach a client.
	KindInternal Kind = iota
	// KindBadRequest covers malformed identifiers, bodies and validation failures.
	KindBadRequest
	// KindUnauthorized covers missing, invalid or expired credentials.
	KindUnauthorized
	// KindForbidden is returned when the caller is authenticated but not permitted.
	KindForbidden
	// KindNotFound is returned when a well-formed identifier matches no record.
	KindNotFound
	// KindConflict is returned on uniqueness violations.
	KindConflict
)

// String returns the lower-case name of the kind, used in logs.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified failure carrying a message that is safe to show to clients.
// Err optionally holds the underlying cause, which is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError creates a classified error with a client-safe message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same sentinel, ignoring any attached cause.
// This lets errors produced by Wrap still match their sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Wrap returns a copy of the sentinel carrying cause as its underlying error.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

// Sentinel errors returned by services. Messages are shown to clients verbatim.
var (
	ErrInvalidID          = NewError(KindBadRequest, "Invalid identifier")
	ErrMalformedBody      = NewError(KindBadRequest, "Invalid request format")
	ErrAuthRequired       = NewError(KindUnauthorized, "Authorization required")
	ErrInvalidCredentials = NewError(KindUnauthorized, "Wrong email or password")
	ErrCardNotOwned       = NewError(KindForbidden, "You are not permitted to delete this card")
	ErrUserNotFound       = NewError(KindNotFound, "User was not found")
	ErrCardNotFound       = NewError(KindNotFound, "Card was not found")
	ErrRouteNotFound      = NewError(KindNotFound, "Sorry, that route doesn't exist.")
	ErrEmailExists        = NewError(KindConflict, "A user with this email already exists")
)

// ErrValidation is the cause wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. Validation errors are bad requests; errors outside the
// taxonomy are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindBadRequest
	}
	return KindInternal
}

// SafeMessage returns the client-facing message for err. Internal errors always
// yield the same generic text.
func SafeMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return de.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return InternalErrorMessage
}

// InternalErrorMessage is the only message ever sent for internal errors.
const InternalErrorMessage = "Internal server error"
