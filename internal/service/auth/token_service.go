package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenTypeSession marks tokens that grant access to one sandbox session.
const TokenTypeSession = "session"

// TokenService defines operations for managing session tokens.
type TokenService interface {
	// GenerateToken creates a signed token for sessionID.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or
	// ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified content of a session token.
type Claims struct {
	// SessionID is the session the token was issued for.
	SessionID uuid.UUID `json:"sid,omitempty"`

	// TokenType is always TokenTypeSession for tokens this package issues.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
