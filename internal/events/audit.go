package events

import (
	"context"
	"log/slog"
)

// AuditedEventTypes are the session and challenge lifecycle events the
// audit log records. Canvas gestures are too frequent to be worth keeping.
var AuditedEventTypes = []string{
	SessionCreated,
	SessionEnded,
	ChallengeStarted,
	ChallengeChecked,
	ChallengeLeft,
}

// AuditLogger writes the events it receives to a structured log at debug
// level.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC: constructor invariant
	}
	return &AuditLogger{logger: logger.With("component", "event_audit")}
}

// HandleEvent logs event.
func (a *AuditLogger) HandleEvent(ctx context.Context, event *SandboxEvent) error {
	a.logger.DebugContext(ctx, "sandbox event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("session_id", event.SessionID.String()),
		slog.String("payload", string(event.Payload)))
	return nil
}
