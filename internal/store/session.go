package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain"
)

// SessionStore defines the interface for sandbox session storage.
type SessionStore interface {
	// Create stores a new session and returns the handle guarding it.
	// Returns ErrCapacity when the store is full and ErrDuplicate when the
	// id is already stored.
	Create(ctx context.Context, session *domain.Session) (*Handle, error)

	// Get returns the handle for id and marks the session as used.
	// Returns ErrSessionNotFound if the session does not exist or has expired.
	Get(ctx context.Context, id uuid.UUID) (*Handle, error)

	// Delete removes the session.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Len returns the number of live sessions.
	Len() int
}

// Handle serializes access to one stored session. Every read or write of
// the session goes through Do.
type Handle struct {
	mu      sync.Mutex
	session *domain.Session
}

// NewHandle wraps session.
func NewHandle(session *domain.Session) *Handle {
	if session == nil {
		panic("session cannot be nil") // ALLOW-PANIC: constructor invariant
	}
	return &Handle{session: session}
}

// ID returns the id of the guarded session.
func (h *Handle) ID() uuid.UUID {
	return h.session.ID
}

// Do runs fn with the session while holding the handle's lock.
func (h *Handle) Do(fn func(*domain.Session) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.session)
}
