package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an input fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidKind is returned when a gate kind is not one of the six kinds.
	ErrInvalidKind = errors.New("invalid gate kind")

	// ErrUnknownInput is returned when an input name is not declared by the
	// input bank it is applied to.
	ErrUnknownInput = errors.New("unknown input")

	// ErrInvalidMode is returned when a mode name is not learn, build or challenges.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidWorkspace is returned when a workspace name is not build or challenge.
	ErrInvalidWorkspace = errors.New("invalid workspace")

	// ErrInstanceNotFound is returned when a gate instance does not exist on a canvas.
	ErrInstanceNotFound = errors.New("gate instance not found")

	// ErrNoActiveChallenge is returned by challenge operations while the
	// learner is on the challenge list.
	ErrNoActiveChallenge = errors.New("no active challenge")
)

// ValidationError describes a single invalid field. It wraps one of the
// sentinel errors above so callers can still use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
