package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the session service.
const (
	SessionCreated     = "session.created"
	SessionEnded       = "session.ended"
	ModeSelected       = "mode.selected"
	GateSelected       = "learn.gate_selected"
	TruthTableToggled  = "learn.truth_table_toggled"
	ChallengeStarted   = "challenge.started"
	ChallengeLeft      = "challenge.left"
	ChallengeChecked   = "challenge.checked"
	PlacementBegun     = "placement.begun"
	PlacementCancelled = "placement.cancelled"
	GatePlaced         = "gate.placed"
	GateMoved          = "gate.moved"
	GateRemoved        = "gate.removed"
	CanvasCleared      = "canvas.cleared"
	InputToggled       = "input.toggled"
)

// SandboxEvent records one state transition of one session.
type SandboxEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the event type constants above
	Type string `json:"type"`

	// SessionID identifies the session that changed
	SessionID uuid.UUID `json:"session_id"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *SandboxEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSandboxEvent creates a SandboxEvent for sessionID. A nil payload
// leaves Payload empty.
func NewSandboxEvent(eventType string, sessionID uuid.UUID, payload interface{}) (*SandboxEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &SandboxEvent{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// GatePayload accompanies gate.placed, gate.moved and gate.removed.
type GatePayload struct {
	Workspace string    `json:"workspace"`
	GateID    uuid.UUID `json:"gate_id"`
	Kind      string    `json:"kind,omitempty"`
}

// InputPayload accompanies input.toggled.
type InputPayload struct {
	Workspace string `json:"workspace"`
	Input     string `json:"input"`
	Value     bool   `json:"value"`
}

// ChallengePayload accompanies challenge.started, challenge.left and
// challenge.checked. Correct is only meaningful for challenge.checked.
type ChallengePayload struct {
	ChallengeID string `json:"challenge_id"`
	Correct     bool   `json:"correct,omitempty"`
}

// WorkspacePayload accompanies events that only name a workspace.
type WorkspacePayload struct {
	Workspace string `json:"workspace"`
	Kind      string `json:"kind,omitempty"`
}

// ModePayload accompanies mode.selected and learn.gate_selected.
type ModePayload struct {
	Value string `json:"value"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *SandboxEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *SandboxEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *SandboxEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *SandboxEvent) error
}
