package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/api/shared"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/service/auth"
)

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseKind converts a request kind name, reporting unknown names as
// domain validation errors.
func parseKind(name string) (logic.Kind, error) {
	k, err := logic.ParseKind(name)
	if err != nil {
		return 0, domain.NewValidationError("kind", fmt.Sprintf("%q is not a gate kind", name), domain.ErrInvalidKind)
	}
	return k, nil
}

// decodeRequest decodes and validates the JSON body into v.
func decodeRequest(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			return err
		}
		return domain.NewValidationError("body", "is not valid JSON", domain.ErrValidation)
	}
	return shared.ValidateRequest(v)
}

// sessionScope is what every session-scoped handler needs: the session
// from the token and, on workspace routes, the workspace from the path.
type sessionScope struct {
	sessionID uuid.UUID
	workspace domain.WorkspaceKind
}

// handleSessionScope resolves the session and optional workspace of a
// request, writing an error response and returning false on failure.
func handleSessionScope(
	w http.ResponseWriter,
	r *http.Request,
	withWorkspace bool,
	log *slog.Logger,
) (sessionScope, bool) {
	sessionID, ok := shared.GetSessionID(r.Context())
	if !ok {
		log.Warn("session ID not found in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return sessionScope{}, false
	}

	scope := sessionScope{sessionID: sessionID}
	if !withWorkspace {
		return scope, true
	}

	ws, err := domain.ParseWorkspaceKind(chi.URLParam(r, "ws"))
	if err != nil {
		log.Debug("invalid workspace", slog.String("value", chi.URLParam(r, "ws")))
		HandleAPIError(w, r, err, "")
		return sessionScope{}, false
	}
	scope.workspace = ws
	return scope, true
}
