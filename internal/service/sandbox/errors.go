package sandbox

import (
	"errors"
	"fmt"

	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/challenge"
	"github.com/tekmux/gatelab/internal/store"
)

// Sentinel errors returned by the sandbox service. Domain validation
// errors (unknown kind, input, mode or workspace, missing gate, no active
// challenge) are returned unchanged so callers can match the domain
// sentinels with errors.Is.
var (
	// ErrSessionNotFound indicates the session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrChallengeNotFound indicates no challenge has the requested id.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrCapacity indicates no new session can be created right now.
	ErrCapacity = errors.New("session capacity reached")
)

// ServiceError wraps unexpected errors from the sandbox service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_session", "place_gate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sandbox service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("sandbox service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError maps store and catalog errors to the service sentinels
// and wraps anything else in a ServiceError. Domain errors pass through.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, store.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, ErrChallengeNotFound), errors.Is(err, challenge.ErrChallengeNotFound):
		return ErrChallengeNotFound
	case errors.Is(err, ErrCapacity), errors.Is(err, store.ErrCapacity):
		return ErrCapacity
	case isDomainError(err):
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

var domainErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidID,
	domain.ErrInvalidKind,
	domain.ErrUnknownInput,
	domain.ErrInvalidMode,
	domain.ErrInvalidWorkspace,
	domain.ErrInstanceNotFound,
	domain.ErrNoActiveChallenge,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
