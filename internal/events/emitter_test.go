package events

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *SandboxEvent {
		t.Helper()
		event, err := NewSandboxEvent(InputToggled, uuid.New(), InputPayload{Workspace: "build", Input: "A", Value: true})
		require.NoError(t, err)
		return event
	}

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := newEvent(t)
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{
			HandlerError: errors.New("handler error"),
		}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		assert.EqualError(t, err, "handler error")

		// Both handlers should still have received the event
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
	})
}

func TestEmitterDeliversBySubscribedType(t *testing.T) {
	emitter := NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	everything := &MockEventHandler{}
	checksOnly := &MockEventHandler{}
	emitter.RegisterHandler(everything)
	emitter.RegisterHandler(checksOnly, ChallengeChecked)

	assert.Equal(t, 2, emitter.HandlerCount(ChallengeChecked))
	assert.Equal(t, 1, emitter.HandlerCount(GatePlaced))

	placed, err := NewSandboxEvent(GatePlaced, uuid.New(), GatePayload{Workspace: "build", Kind: "AND"})
	require.NoError(t, err)
	checked, err := NewSandboxEvent(ChallengeChecked, uuid.New(), ChallengePayload{ChallengeID: "1"})
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), placed))
	require.NoError(t, emitter.EmitEvent(context.Background(), checked))

	assert.Equal(t, 2, everything.HandledCount)
	assert.Equal(t, 1, checksOnly.HandledCount)
	assert.Equal(t, checked, checksOnly.LastEvent)
}

func TestEmitterJoinsHandlerErrors(t *testing.T) {
	emitter := NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	errFirst := errors.New("first")
	errSecond := errors.New("second")
	emitter.RegisterHandler(&MockEventHandler{HandlerError: errFirst})
	emitter.RegisterHandler(&MockEventHandler{HandlerError: errSecond})

	event, err := NewSandboxEvent(CanvasCleared, uuid.New(), WorkspacePayload{Workspace: "build"})
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)

	assert.Error(t, emitter.EmitEvent(context.Background(), nil))
}

func TestAuditedEventTypesSkipGestures(t *testing.T) {
	emitter := NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	emitter.RegisterHandler(&MockEventHandler{}, AuditedEventTypes...)

	assert.Equal(t, 1, emitter.HandlerCount(SessionCreated))
	assert.Equal(t, 1, emitter.HandlerCount(ChallengeChecked))
	assert.Equal(t, 0, emitter.HandlerCount(GateMoved))
	assert.Equal(t, 0, emitter.HandlerCount(InputToggled))
}

func TestAuditLoggerWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	event, err := NewSandboxEvent(ChallengeChecked, uuid.New(), ChallengePayload{ChallengeID: "1", Correct: true})
	require.NoError(t, err)

	require.NoError(t, NewAuditLogger(logger).HandleEvent(context.Background(), event))
	assert.Contains(t, buf.String(), `"event_type":"challenge.checked"`)
	assert.Contains(t, buf.String(), `"component":"event_audit"`)
}
