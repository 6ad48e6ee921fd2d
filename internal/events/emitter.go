package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/tekmux/gatelab/internal/redact"
)

// subscription is a handler plus the event types it receives. A nil types
// set receives every event.
type subscription struct {
	handler EventHandler
	types   map[string]struct{}
}

func (s subscription) wants(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// InMemoryEventEmitter dispatches sandbox events synchronously to the
// handlers subscribed to their type, in registration order.
type InMemoryEventEmitter struct {
	subs   []subscription
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC: constructor invariant
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "sandbox_event_emitter"),
	}
}

// RegisterHandler subscribes handler to the given event types, or to every
// event when no type is given.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, types ...string) {
	sub := subscription{handler: handler}
	if len(types) > 0 {
		sub.types = make(map[string]struct{}, len(types))
		for _, t := range types {
			sub.types[t] = struct{}{}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, sub)
	e.logger.Debug("registered event handler",
		"handler_count", len(e.subs),
		"event_types", types)
}

// HandlerCount reports how many handlers would receive an event of eventType.
func (e *InMemoryEventEmitter) HandlerCount(eventType string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, sub := range e.subs {
		if sub.wants(eventType) {
			n++
		}
	}
	return n
}

// EmitEvent delivers event to every subscribed handler. A failing handler
// does not stop delivery; all handler errors are joined and returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *SandboxEvent) error {
	if event == nil {
		return errors.New("nil event")
	}

	e.mu.RLock()
	handlers := make([]EventHandler, 0, len(e.subs))
	for _, sub := range e.subs {
		if sub.wants(event.Type) {
			handlers = append(handlers, sub.handler)
		}
	}
	e.mu.RUnlock()

	if len(handlers) == 0 {
		e.logger.DebugContext(ctx, "no handlers subscribed to event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var errs []error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.ErrorContext(ctx, "handler failed to process event",
				"error", redact.Error(err),
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type,
				"session_id", event.SessionID)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
