package sandbox

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/events"
	"github.com/tekmux/gatelab/internal/platform/logger"
	"github.com/tekmux/gatelab/internal/redact"
	"github.com/tekmux/gatelab/internal/store"
)

// Catalog provides the read-only challenge list.
type Catalog interface {
	// List returns every challenge in display order.
	List() []domain.Challenge
	// Get returns one challenge or an error wrapping challenge.ErrChallengeNotFound.
	Get(id string) (domain.Challenge, error)
}

// Service provides the sandbox operations for one learner session at a time.
type Service interface {
	// Challenges returns the challenge catalog in display order.
	Challenges() []domain.Challenge

	// CreateSession starts a new session on the learn tab.
	CreateSession(ctx context.Context) (Snapshot, error)
	// Snapshot returns the current state of a session.
	Snapshot(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)
	// EndSession discards a session.
	EndSession(ctx context.Context, sessionID uuid.UUID) error

	// SelectMode switches tab. The active challenge is kept.
	SelectMode(ctx context.Context, sessionID uuid.UUID, mode domain.Mode) (Snapshot, error)
	// SelectGate picks the gate shown on the learn tab.
	SelectGate(ctx context.Context, sessionID uuid.UUID, kind logic.Kind) (Snapshot, error)
	// ToggleTruthTable shows or hides the learn tab truth table.
	ToggleTruthTable(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)

	// StartChallenge makes a challenge active with a fresh workspace.
	StartChallenge(ctx context.Context, sessionID uuid.UUID, challengeID string) (Snapshot, error)
	// BackToList leaves the active challenge.
	BackToList(ctx context.Context, sessionID uuid.UUID) (Snapshot, error)
	// CheckChallenge verifies the active challenge's circuit.
	CheckChallenge(ctx context.Context, sessionID uuid.UUID) (domain.ChallengeResult, error)

	// BeginPlacement picks a gate from the palette.
	BeginPlacement(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, kind logic.Kind) (Snapshot, error)
	// CompletePlacement drops the picked gate centred on a canvas point.
	CompletePlacement(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, p domain.Point) (GateChange, error)
	// CancelPlacement forgets the picked gate.
	CancelPlacement(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind) (Snapshot, error)
	// PlaceGate puts a gate with its top-left corner at a canvas point.
	PlaceGate(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, kind logic.Kind, p domain.Point) (GateChange, error)
	// MoveGate repositions a gate.
	MoveGate(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, gateID uuid.UUID, p domain.Point) (GateChange, error)
	// RemoveGate deletes a gate and reports whether it existed.
	RemoveGate(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, gateID uuid.UUID) (bool, error)
	// ClearCanvas removes every gate from a workspace.
	ClearCanvas(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind) (Snapshot, error)
	// ToggleInput flips one input and recomputes the workspace's gates.
	ToggleInput(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, name domain.InputName) (Snapshot, error)
}

// event is the change a gesture reports, emitted after the session lock
// is released.
type event struct {
	typ     string
	payload interface{}
}

// serviceImpl implements the Service interface
type serviceImpl struct {
	sessions store.SessionStore
	catalog  Catalog
	checker  domain.Checker
	emitter  events.EventEmitter
	layout   domain.Layout
	logger   *slog.Logger
}

// NewService creates a new sandbox Service.
// It returns an error if any of the required dependencies are nil.
func NewService(
	sessions store.SessionStore,
	catalog Catalog,
	checker domain.Checker,
	emitter events.EventEmitter,
	layout domain.Layout,
	log *slog.Logger,
) (Service, error) {
	if sessions == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "sessions cannot be nil"}
	}
	if catalog == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if checker == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "checker cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}

	// Use provided logger or create default
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		sessions: sessions,
		catalog:  catalog,
		checker:  checker,
		emitter:  emitter,
		layout:   layout,
		logger:   log.With("component", "sandbox_service"),
	}, nil
}

func (s *serviceImpl) Challenges() []domain.Challenge {
	return s.catalog.List()
}

func (s *serviceImpl) CreateSession(ctx context.Context) (Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session := domain.NewSession(s.layout)
	handle, err := s.sessions.Create(ctx, session)
	if err != nil {
		log.Warn("failed to store new session", slog.String("error", redact.Error(err)))
		return Snapshot{}, NewServiceError("create_session", "failed to store session", err)
	}

	var snap Snapshot
	_ = handle.Do(func(sess *domain.Session) error {
		snap = newSnapshot(sess)
		return nil
	})

	log.Info("session created", slog.String("session_id", session.ID.String()))
	s.emit(ctx, session.ID, event{typ: events.SessionCreated})
	return snap, nil
}

func (s *serviceImpl) Snapshot(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	handle, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Snapshot{}, NewServiceError("get_session", "failed to load session", err)
	}
	var snap Snapshot
	_ = handle.Do(func(sess *domain.Session) error {
		snap = newSnapshot(sess)
		return nil
	})
	return snap, nil
}

func (s *serviceImpl) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return NewServiceError("end_session", "failed to delete session", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("session ended",
		slog.String("session_id", sessionID.String()))
	s.emit(ctx, sessionID, event{typ: events.SessionEnded})
	return nil
}

func (s *serviceImpl) SelectMode(ctx context.Context, sessionID uuid.UUID, mode domain.Mode) (Snapshot, error) {
	return s.mutate(ctx, "select_mode", sessionID, func(sess *domain.Session) (event, error) {
		if err := sess.SelectMode(mode); err != nil {
			return event{}, err
		}
		return event{typ: events.ModeSelected, payload: events.ModePayload{Value: string(mode)}}, nil
	})
}

func (s *serviceImpl) SelectGate(ctx context.Context, sessionID uuid.UUID, kind logic.Kind) (Snapshot, error) {
	return s.mutate(ctx, "select_gate", sessionID, func(sess *domain.Session) (event, error) {
		if err := sess.SelectGate(kind); err != nil {
			return event{}, err
		}
		return event{typ: events.GateSelected, payload: events.ModePayload{Value: kind.String()}}, nil
	})
}

func (s *serviceImpl) ToggleTruthTable(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	return s.mutate(ctx, "toggle_truth_table", sessionID, func(sess *domain.Session) (event, error) {
		sess.ToggleTruthTable()
		return event{typ: events.TruthTableToggled}, nil
	})
}

func (s *serviceImpl) StartChallenge(ctx context.Context, sessionID uuid.UUID, challengeID string) (Snapshot, error) {
	ch, err := s.catalog.Get(challengeID)
	if err != nil {
		return Snapshot{}, NewServiceError("start_challenge", "failed to find challenge", err)
	}
	return s.mutate(ctx, "start_challenge", sessionID, func(sess *domain.Session) (event, error) {
		sess.StartChallenge(ch)
		return event{typ: events.ChallengeStarted, payload: events.ChallengePayload{ChallengeID: ch.ID}}, nil
	})
}

func (s *serviceImpl) BackToList(ctx context.Context, sessionID uuid.UUID) (Snapshot, error) {
	return s.mutate(ctx, "back_to_list", sessionID, func(sess *domain.Session) (event, error) {
		left := ""
		if active := sess.Active(); active != nil {
			left = active.Challenge.ID
		}
		sess.BackToList()
		return event{typ: events.ChallengeLeft, payload: events.ChallengePayload{ChallengeID: left}}, nil
	})
}

func (s *serviceImpl) CheckChallenge(ctx context.Context, sessionID uuid.UUID) (domain.ChallengeResult, error) {
	var result domain.ChallengeResult
	_, err := s.mutate(ctx, "check_challenge", sessionID, func(sess *domain.Session) (event, error) {
		var err error
		result, err = sess.Check(s.checker)
		if err != nil {
			return event{}, err
		}
		return event{typ: events.ChallengeChecked, payload: events.ChallengePayload{
			ChallengeID: sess.Active().Challenge.ID,
			Correct:     result.Correct,
		}}, nil
	})
	if err != nil {
		return domain.ChallengeResult{}, err
	}
	return result, nil
}

func (s *serviceImpl) BeginPlacement(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, kind logic.Kind) (Snapshot, error) {
	return s.mutate(ctx, "begin_placement", sessionID, func(sess *domain.Session) (event, error) {
		if err := sess.BeginPlacement(ws, kind); err != nil {
			return event{}, err
		}
		return event{typ: events.PlacementBegun, payload: events.WorkspacePayload{Workspace: string(ws), Kind: kind.String()}}, nil
	})
}

func (s *serviceImpl) CompletePlacement(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, p domain.Point) (GateChange, error) {
	var change GateChange
	snap, err := s.mutate(ctx, "complete_placement", sessionID, func(sess *domain.Session) (event, error) {
		inst, ok, err := sess.CompletePlacement(ws, p)
		if err != nil {
			return event{}, err
		}
		if !ok {
			return event{}, nil
		}
		gate := newGateView(inst)
		change.Gate = &gate
		change.Placed = true
		return gateEvent(events.GatePlaced, ws, inst), nil
	})
	if err != nil {
		return GateChange{}, err
	}
	change.Session = snap
	return change, nil
}

func (s *serviceImpl) CancelPlacement(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind) (Snapshot, error) {
	return s.mutate(ctx, "cancel_placement", sessionID, func(sess *domain.Session) (event, error) {
		if err := sess.CancelPlacement(ws); err != nil {
			return event{}, err
		}
		return event{typ: events.PlacementCancelled, payload: events.WorkspacePayload{Workspace: string(ws)}}, nil
	})
}

func (s *serviceImpl) PlaceGate(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, kind logic.Kind, p domain.Point) (GateChange, error) {
	var change GateChange
	snap, err := s.mutate(ctx, "place_gate", sessionID, func(sess *domain.Session) (event, error) {
		inst, err := sess.Place(ws, kind, p.X, p.Y)
		if err != nil {
			return event{}, err
		}
		gate := newGateView(inst)
		change.Gate = &gate
		change.Placed = true
		return gateEvent(events.GatePlaced, ws, inst), nil
	})
	if err != nil {
		return GateChange{}, err
	}
	change.Session = snap
	return change, nil
}

func (s *serviceImpl) MoveGate(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, gateID uuid.UUID, p domain.Point) (GateChange, error) {
	var change GateChange
	snap, err := s.mutate(ctx, "move_gate", sessionID, func(sess *domain.Session) (event, error) {
		inst, err := sess.Move(ws, gateID, p.X, p.Y)
		if err != nil {
			return event{}, err
		}
		gate := newGateView(inst)
		change.Gate = &gate
		return gateEvent(events.GateMoved, ws, inst), nil
	})
	if err != nil {
		return GateChange{}, err
	}
	change.Session = snap
	return change, nil
}

func (s *serviceImpl) RemoveGate(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, gateID uuid.UUID) (bool, error) {
	var removed bool
	_, err := s.mutate(ctx, "remove_gate", sessionID, func(sess *domain.Session) (event, error) {
		var err error
		removed, err = sess.Remove(ws, gateID)
		if err != nil || !removed {
			return event{}, err
		}
		return event{typ: events.GateRemoved, payload: events.GatePayload{Workspace: string(ws), GateID: gateID}}, nil
	})
	return removed, err
}

func (s *serviceImpl) ClearCanvas(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind) (Snapshot, error) {
	return s.mutate(ctx, "clear_canvas", sessionID, func(sess *domain.Session) (event, error) {
		if err := sess.Clear(ws); err != nil {
			return event{}, err
		}
		return event{typ: events.CanvasCleared, payload: events.WorkspacePayload{Workspace: string(ws)}}, nil
	})
}

func (s *serviceImpl) ToggleInput(ctx context.Context, sessionID uuid.UUID, ws domain.WorkspaceKind, name domain.InputName) (Snapshot, error) {
	return s.mutate(ctx, "toggle_input", sessionID, func(sess *domain.Session) (event, error) {
		bank, err := sess.Toggle(ws, name)
		if err != nil {
			return event{}, err
		}
		return event{typ: events.InputToggled, payload: events.InputPayload{
			Workspace: string(ws),
			Input:     string(name),
			Value:     bank.Get(name),
		}}, nil
	})
}

// mutate runs fn on the session under its lock. On success it records the
// change time, snapshots the session and emits the reported event. A zero
// event means nothing changed: no timestamp bump and no emission.
func (s *serviceImpl) mutate(
	ctx context.Context,
	op string,
	sessionID uuid.UUID,
	fn func(*domain.Session) (event, error),
) (Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	handle, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		log.Debug("session lookup failed",
			slog.String("operation", op),
			slog.String("session_id", sessionID.String()),
			slog.String("error", redact.Error(err)))
		return Snapshot{}, NewServiceError(op, "failed to load session", err)
	}

	var (
		snap Snapshot
		ev   event
	)
	err = handle.Do(func(sess *domain.Session) error {
		var err error
		ev, err = fn(sess)
		if err != nil {
			return err
		}
		if ev.typ != "" {
			sess.Touch()
		}
		snap = newSnapshot(sess)
		return nil
	})
	if err != nil {
		log.Debug("gesture rejected",
			slog.String("operation", op),
			slog.String("session_id", sessionID.String()),
			slog.String("error", redact.Error(err)))
		return Snapshot{}, NewServiceError(op, "gesture rejected", err)
	}

	if ev.typ != "" {
		s.emit(ctx, sessionID, ev)
	}
	return snap, nil
}

// emit publishes ev. Handler failures are logged and never fail the gesture.
func (s *serviceImpl) emit(ctx context.Context, sessionID uuid.UUID, ev event) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	e, err := events.NewSandboxEvent(ev.typ, sessionID, ev.payload)
	if err != nil {
		log.Error("failed to create event",
			slog.String("event_type", ev.typ),
			slog.String("error", redact.Error(err)))
		return
	}
	if err := s.emitter.EmitEvent(ctx, e); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", ev.typ),
			slog.String("event_id", e.ID.String()),
			slog.String("error", redact.Error(err)))
	}
}

func gateEvent(typ string, ws domain.WorkspaceKind, inst domain.Instance) event {
	return event{typ: typ, payload: events.GatePayload{
		Workspace: string(ws),
		GateID:    inst.ID,
		Kind:      inst.Kind.String(),
	}}
}
