package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/store"
)

// Config controls session lifetime and capacity.
type Config struct {
	// TTL is how long a session may stay unused. Zero disables expiry.
	TTL time.Duration
	// MaxSessions caps the number of live sessions. Zero means unlimited.
	MaxSessions int
	// JanitorInterval is how often expired sessions are swept. Zero
	// disables the janitor; expiry then happens lazily on Get.
	JanitorInterval time.Duration
}

type entry struct {
	handle   *store.Handle
	lastUsed time.Time
}

// SessionStore implements store.SessionStore in memory.
type SessionStore struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a store and starts its janitor when
// cfg.JanitorInterval is positive. Close stops the janitor.
func NewSessionStore(cfg Config, logger *slog.Logger) *SessionStore {
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC: constructor invariant
	}
	s := &SessionStore{
		cfg:      cfg,
		logger:   logger.With("component", "memory_session_store"),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
		done:     make(chan struct{}),
	}
	if cfg.JanitorInterval > 0 {
		s.wg.Add(1)
		go s.janitor(cfg.JanitorInterval)
	}
	return s
}

// Create stores session. Expired sessions are swept first so they do not
// count against capacity.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) (*store.Handle, error) {
	if session == nil {
		return nil, store.NewStoreError("session", "create", "session is nil", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, store.NewStoreError("session", "create", "store is closed", store.ErrClosed)
	}
	if _, exists := s.sessions[session.ID]; exists {
		return nil, store.NewStoreError("session", "create", "id already stored", store.ErrDuplicate)
	}
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.sweepLocked()
		if len(s.sessions) >= s.cfg.MaxSessions {
			return nil, store.NewStoreError("session", "create", "too many live sessions", store.ErrCapacity)
		}
	}

	h := store.NewHandle(session)
	s.sessions[session.ID] = &entry{handle: h, lastUsed: s.now()}
	return h, nil
}

// Get returns the handle for id and refreshes its idle timer.
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*store.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		s.logger.DebugContext(ctx, "session expired on access", slog.String("session_id", id.String()))
		return nil, store.ErrSessionNotFound
	}
	e.lastUsed = now
	return e.handle, nil
}

// Delete removes the session with id.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return store.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions, including expired sessions
// the janitor has not swept yet.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes every expired session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// Close stops the janitor and waits for it to exit. Stored sessions are
// dropped. Close is safe to call more than once.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.sessions = make(map[uuid.UUID]*entry)
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

func (s *SessionStore) janitor(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired sessions swept", slog.Int("count", n))
			}
		}
	}
}

func (s *SessionStore) sweepLocked() int {
	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) expired(e *entry, now time.Time) bool {
	return s.cfg.TTL > 0 && now.Sub(e.lastUsed) > s.cfg.TTL
}
