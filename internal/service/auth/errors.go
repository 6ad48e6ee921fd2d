// Package auth issues and verifies the bearer tokens that bind an HTTP
// client to its sandbox session.
package auth

import "errors"

// Common session token errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("session token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("session token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("session token is missing")

	// ErrWrongTokenType indicates the token was issued for another purpose
	ErrWrongTokenType = errors.New("wrong token type")
)
