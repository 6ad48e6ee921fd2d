package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tekmux/gatelab/internal/api/shared"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/service/auth"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, sandbox.ErrSessionNotFound),
		errors.Is(err, sandbox.ErrChallengeNotFound),
		errors.Is(err, domain.ErrInstanceNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrNoActiveChallenge):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrUnknownInput),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidWorkspace),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// Capacity
	case errors.Is(err, sandbox.ErrCapacity):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	var fieldErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, sandbox.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, sandbox.ErrChallengeNotFound):
		return "Challenge not found"
	case errors.Is(err, domain.ErrInstanceNotFound):
		return "Gate not found"

	case errors.Is(err, domain.ErrNoActiveChallenge):
		return "No challenge is active"

	case errors.Is(err, domain.ErrInvalidKind):
		return "Invalid gate kind"
	case errors.Is(err, domain.ErrUnknownInput):
		return "Unknown input"
	case errors.Is(err, domain.ErrInvalidMode):
		return "Invalid mode"
	case errors.Is(err, domain.ErrInvalidWorkspace):
		return "Invalid workspace"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body required"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid %s", fieldErr.Field)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, sandbox.ErrCapacity):
		return "Too many active sessions, try again later"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming
// the first invalid field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	first := errs[0]
	return fmt.Sprintf("Invalid %s: %s", first.Field(), getValidationTagMessage(first.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message replaces the safe message for server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safe := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && message != "" {
		safe = message
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, safe, err, opts...)
}
