package domain

import (
	"errors"
	"strings"
)

// Error kinds. Every error returned by a service unwraps to one of these, or
// is treated as an internal failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("resource already exists")
	ErrDuplicate          = errors.New("duplicate placement")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
)

// Error pairs an error kind with the message shown to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }
func Duplicate(msg string) error { return &Error{Kind: ErrDuplicate, Message: msg} }
func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }
func InvalidCredentials(msg string) error { return &Error{Kind: ErrInvalidCredentials, Message: msg} }

// Message returns the client-facing text for err. Errors that carry no
// explicit message fall back to the text of their kind.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

// Violation is a single failed validation rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rule a payload violated.
type ValidationError struct {
	Violations []Violation
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
