package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tekmux/gatelab/internal/api/shared"
	"github.com/tekmux/gatelab/internal/platform/logger"
	"github.com/tekmux/gatelab/internal/service/auth"
)

// AuthMiddleware authenticates session-scoped routes with bearer tokens.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	if tokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("token service cannot be nil for AuthMiddleware")
	}
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the session token from the Authorization header
// and adds the session ID to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Authorization header required", auth.ErrMissingToken)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
			}
			return
		}

		logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("session authenticated",
			slog.String("session_id", claims.SessionID.String()))

		ctx := shared.WithSessionID(r.Context(), claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
