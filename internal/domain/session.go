package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// LearnState is the learn tab's selection.
type LearnState struct {
	Selected       logic.Kind `json:"selected"`
	ShowTruthTable bool       `json:"show_truth_table"`
}

// ActiveChallenge is the challenge being worked on together with its own
// workspace and the last check result.
type ActiveChallenge struct {
	Challenge Challenge
	Workspace *Workspace
	Result    *ChallengeResult
}

// Session is one learner's sandbox: the mode navigator, the learn tab
// state, the free-build workspace and, while a challenge is active, the
// challenge workspace. Free-build and challenge workspaces never share a
// bank or canvas.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	layout    Layout
	nav       Navigator
	learn     LearnState
	build     *Workspace
	challenge *ActiveChallenge
}

// NewSession creates a session on the learn tab with an empty free-build
// workspace reading inputs A and B.
func NewSession(layout Layout) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		layout:    layout,
		nav:       NewNavigator(),
		learn:     LearnState{Selected: logic.AND},
		build:     NewWorkspace(layout, DefaultWiring, InputA, InputB),
	}
}

// Layout returns the canvas layout used by the session's workspaces.
func (s *Session) Layout() Layout { return s.layout }

// Navigator returns the mode state.
func (s *Session) Navigator() Navigator { return s.nav }

// Learn returns the learn tab state.
func (s *Session) Learn() LearnState { return s.learn }

// Build returns the free-build workspace.
func (s *Session) Build() *Workspace { return s.build }

// Active returns the active challenge, or nil on the challenge list.
func (s *Session) Active() *ActiveChallenge { return s.challenge }

// Touch records a change at the current time.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// SelectMode switches tab.
func (s *Session) SelectMode(m Mode) error {
	return s.nav.Select(m)
}

// SelectGate picks the gate shown on the learn tab.
func (s *Session) SelectGate(k logic.Kind) error {
	if !k.Valid() {
		return NewValidationError("kind", fmt.Sprintf("%d is not a gate kind", uint8(k)), ErrInvalidKind)
	}
	s.learn.Selected = k
	return nil
}

// ToggleTruthTable shows or hides the learn tab truth table and returns
// the new visibility.
func (s *Session) ToggleTruthTable() bool {
	s.learn.ShowTruthTable = !s.learn.ShowTruthTable
	return s.learn.ShowTruthTable
}

// StartChallenge makes ch active with a fresh workspace: empty canvas,
// every declared input false and no result.
func (s *Session) StartChallenge(ch Challenge) {
	s.nav.Start(ch.ID)
	s.challenge = &ActiveChallenge{
		Challenge: ch,
		Workspace: NewWorkspace(s.layout, ch.Wiring(), ch.Inputs...),
	}
}

// BackToList leaves the active challenge, discarding its canvas and result.
func (s *Session) BackToList() {
	s.nav.Back()
	s.challenge = nil
}

// Workspace returns the workspace named by kind.
func (s *Session) Workspace(kind WorkspaceKind) (*Workspace, error) {
	switch kind {
	case WorkspaceBuild:
		return s.build, nil
	case WorkspaceChallenge:
		if s.challenge == nil {
			return nil, ErrNoActiveChallenge
		}
		return s.challenge.Workspace, nil
	default:
		return nil, NewValidationError("workspace", "must be build or challenge", ErrInvalidWorkspace)
	}
}

// markStale flags the last result once the challenge circuit changes.
func (s *Session) markStale(kind WorkspaceKind) {
	if kind == WorkspaceChallenge && s.challenge != nil && s.challenge.Result != nil {
		s.challenge.Result.Stale = true
	}
}

// Place puts a gate on a workspace's canvas.
func (s *Session) Place(ws WorkspaceKind, kind logic.Kind, x, y float64) (Instance, error) {
	w, err := s.Workspace(ws)
	if err != nil {
		return Instance{}, err
	}
	inst, err := w.Place(kind, x, y)
	if err != nil {
		return Instance{}, err
	}
	s.markStale(ws)
	return inst, nil
}

// BeginPlacement picks a gate kind in a workspace.
func (s *Session) BeginPlacement(ws WorkspaceKind, kind logic.Kind) error {
	w, err := s.Workspace(ws)
	if err != nil {
		return err
	}
	return w.BeginPlacement(kind)
}

// CompletePlacement drops the picked gate. A drop without a picked gate is
// ignored and reports ok == false.
func (s *Session) CompletePlacement(ws WorkspaceKind, p Point) (Instance, bool, error) {
	w, err := s.Workspace(ws)
	if err != nil {
		return Instance{}, false, err
	}
	inst, ok := w.CompletePlacement(p)
	if ok {
		s.markStale(ws)
	}
	return inst, ok, nil
}

// CancelPlacement forgets the picked gate.
func (s *Session) CancelPlacement(ws WorkspaceKind) error {
	w, err := s.Workspace(ws)
	if err != nil {
		return err
	}
	w.CancelPlacement()
	return nil
}

// Move repositions a gate.
func (s *Session) Move(ws WorkspaceKind, id uuid.UUID, x, y float64) (Instance, error) {
	w, err := s.Workspace(ws)
	if err != nil {
		return Instance{}, err
	}
	inst, err := w.Move(id, x, y)
	if err != nil {
		return Instance{}, err
	}
	s.markStale(ws)
	return inst, nil
}

// Remove deletes a gate; unknown ids are a no-op.
func (s *Session) Remove(ws WorkspaceKind, id uuid.UUID) (bool, error) {
	w, err := s.Workspace(ws)
	if err != nil {
		return false, err
	}
	removed := w.Remove(id)
	if removed {
		s.markStale(ws)
	}
	return removed, nil
}

// Clear empties a workspace's canvas. Clearing the challenge canvas also
// discards the last result.
func (s *Session) Clear(ws WorkspaceKind) error {
	w, err := s.Workspace(ws)
	if err != nil {
		return err
	}
	w.Clear()
	if ws == WorkspaceChallenge {
		s.challenge.Result = nil
	}
	return nil
}

// Toggle flips an input and recomputes the workspace's canvas.
func (s *Session) Toggle(ws WorkspaceKind, name InputName) (InputBank, error) {
	w, err := s.Workspace(ws)
	if err != nil {
		return InputBank{}, err
	}
	bank, err := w.Toggle(name)
	if err != nil {
		return bank, err
	}
	s.markStale(ws)
	return bank, nil
}

// Check verifies the active challenge's circuit and keeps the result.
func (s *Session) Check(checker Checker) (ChallengeResult, error) {
	if s.challenge == nil {
		return ChallengeResult{}, ErrNoActiveChallenge
	}
	result := checker.Check(s.challenge.Challenge, s.challenge.Workspace.Canvas().Instances())
	s.challenge.Result = &result
	return result, nil
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	cp := *s
	cp.build = s.build.Clone()
	if s.challenge != nil {
		active := ActiveChallenge{
			Challenge: s.challenge.Challenge,
			Workspace: s.challenge.Workspace.Clone(),
		}
		if s.challenge.Result != nil {
			result := *s.challenge.Result
			active.Result = &result
		}
		cp.challenge = &active
	}
	return &cp
}
