package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/store"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testLayout = domain.Layout{Canvas: domain.Size{Width: 800, Height: 384}}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, cfg Config) (*SessionStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSessionStore(cfg, discardLogger())
	s.now = clock.Now
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func TestSessionStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, Config{})

	session := domain.NewSession(testLayout)
	h, err := s.Create(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, session.ID, h.ID())
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, h, got)

	_, err = s.Create(ctx, session)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	require.NoError(t, s.Delete(ctx, session.ID))
	assert.Equal(t, 0, s.Len())

	_, err = s.Get(ctx, session.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete(ctx, session.ID), store.ErrSessionNotFound)
	assert.True(t, store.IsNotFoundError(s.Delete(ctx, uuid.New())))
}

func TestSessionStoreCapacity(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t, Config{MaxSessions: 2, TTL: time.Minute})

	_, err := s.Create(ctx, domain.NewSession(testLayout))
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.NewSession(testLayout))
	require.NoError(t, err)

	_, err = s.Create(ctx, domain.NewSession(testLayout))
	assert.ErrorIs(t, err, store.ErrCapacity)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "create", storeErr.Operation)

	// Once the first two expire they no longer count.
	clock.Advance(2 * time.Minute)
	_, err = s.Create(ctx, domain.NewSession(testLayout))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t, Config{TTL: 10 * time.Minute})

	active := domain.NewSession(testLayout)
	idle := domain.NewSession(testLayout)
	_, err := s.Create(ctx, active)
	require.NoError(t, err)
	_, err = s.Create(ctx, idle)
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	_, err = s.Get(ctx, active.ID)
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	_, err = s.Get(ctx, active.ID)
	assert.NoError(t, err, "access refreshes the idle timer")

	_, err = s.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
	assert.Equal(t, 1, s.Len())

	clock.Advance(11 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
}

func TestSessionStoreJanitorSweeps(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(Config{TTL: time.Nanosecond, JanitorInterval: time.Millisecond}, discardLogger())
	defer func() { _ = s.Close() }()

	_, err := s.Create(ctx, domain.NewSession(testLayout))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestSessionStoreClose(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(Config{JanitorInterval: time.Millisecond}, discardLogger())

	_, err := s.Create(ctx, domain.NewSession(testLayout))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Len())

	_, err = s.Create(ctx, domain.NewSession(testLayout))
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestNewSessionStorePanicsWithoutLogger(t *testing.T) {
	assert.Panics(t, func() { NewSessionStore(Config{}, nil) })
}
