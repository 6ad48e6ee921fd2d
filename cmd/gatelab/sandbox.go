package main

import (
	"fmt"
	"log/slog"

	"github.com/tekmux/gatelab/internal/config"
	"github.com/tekmux/gatelab/internal/domain/challenge"
	"github.com/tekmux/gatelab/internal/events"
	"github.com/tekmux/gatelab/internal/platform/memory"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// localSandbox is an in-process sandbox for the terminal commands.
type localSandbox struct {
	service  sandbox.Service
	sessions *memory.SessionStore
	emitter  *events.InMemoryEventEmitter
}

func newLocalSandbox(cfg config.SandboxConfig, logger *slog.Logger) (*localSandbox, error) {
	catalog, err := challenge.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge catalog: %w", err)
	}

	sessions := memory.NewSessionStore(memory.Config{
		TTL:             cfg.SessionTTL(),
		MaxSessions:     cfg.MaxSessions,
		JanitorInterval: cfg.JanitorInterval(),
	}, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewAuditLogger(logger), events.AuditedEventTypes...)

	svc, err := sandbox.NewService(sessions, catalog, challenge.NewValidator(), emitter, cfg.Layout(), logger)
	if err != nil {
		_ = sessions.Close()
		return nil, fmt.Errorf("failed to create sandbox service: %w", err)
	}

	return &localSandbox{service: svc, sessions: sessions, emitter: emitter}, nil
}

func (s *localSandbox) Close() error {
	return s.sessions.Close()
}
