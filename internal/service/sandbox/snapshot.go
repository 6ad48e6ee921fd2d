package sandbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	SessionID uuid.UUID      `json:"session_id"`
	Mode      domain.Mode    `json:"mode"`
	Learn     LearnView      `json:"learn"`
	Build     WorkspaceView  `json:"build"`
	Challenge *ChallengeView `json:"challenge,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LearnView is the learn tab. TruthTable is only filled while shown.
type LearnView struct {
	Selected       logic.Kind  `json:"selected"`
	Glyph          string      `json:"glyph"`
	Description    string      `json:"description"`
	ShowTruthTable bool        `json:"show_truth_table"`
	TruthTable     []logic.Row `json:"truth_table,omitempty"`
}

// WorkspaceView is one input bank and canvas.
type WorkspaceView struct {
	Inputs    domain.InputBank `json:"inputs"`
	Gates     []GateView       `json:"gates"`
	Pending   *logic.Kind      `json:"pending,omitempty"`
	Output    *bool            `json:"output"`
	Canvas    domain.Size      `json:"canvas"`
	Footprint domain.Size      `json:"footprint"`
}

// GateView is one placed gate.
type GateView struct {
	ID       uuid.UUID    `json:"id"`
	Kind     logic.Kind   `json:"kind"`
	Position domain.Point `json:"position"`
	Seq      uint64       `json:"seq"`
	Inputs   []bool       `json:"inputs"`
	Output   bool         `json:"output"`
}

// ChallengeView is the active challenge with its workspace and last result.
type ChallengeView struct {
	Challenge domain.Challenge        `json:"challenge"`
	Workspace WorkspaceView           `json:"workspace"`
	Result    *domain.ChallengeResult `json:"result,omitempty"`
}

// GateChange is the outcome of a gesture that places or moves one gate.
// Gate is nil when a drop was ignored.
type GateChange struct {
	Gate    *GateView `json:"gate,omitempty"`
	Placed  bool      `json:"placed"`
	Session Snapshot  `json:"session"`
}

func newSnapshot(s *domain.Session) Snapshot {
	learn := s.Learn()
	snap := Snapshot{
		SessionID: s.ID,
		Mode:      s.Navigator().Mode(),
		Learn: LearnView{
			Selected:       learn.Selected,
			Glyph:          learn.Selected.Glyph(),
			Description:    learn.Selected.Description(),
			ShowTruthTable: learn.ShowTruthTable,
		},
		Build:     newWorkspaceView(s.Build()),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if learn.ShowTruthTable {
		snap.Learn.TruthTable = logic.TruthTable(learn.Selected)
	}
	if active := s.Active(); active != nil {
		view := &ChallengeView{
			Challenge: active.Challenge,
			Workspace: newWorkspaceView(active.Workspace),
		}
		if active.Result != nil {
			result := *active.Result
			view.Result = &result
		}
		snap.Challenge = view
	}
	return snap
}

func newWorkspaceView(w *domain.Workspace) WorkspaceView {
	canvas := w.Canvas()
	instances := canvas.Instances()

	view := WorkspaceView{
		Inputs:    w.Bank(),
		Gates:     make([]GateView, 0, len(instances)),
		Canvas:    canvas.Bounds(),
		Footprint: canvas.Footprint(),
	}
	for _, inst := range instances {
		view.Gates = append(view.Gates, newGateView(inst))
	}
	if kind, ok := canvas.Pending(); ok {
		view.Pending = &kind
	}
	if out, ok := canvas.Output(); ok {
		view.Output = &out
	}
	return view
}

func newGateView(inst domain.Instance) GateView {
	return GateView{
		ID:       inst.ID,
		Kind:     inst.Kind,
		Position: inst.Position,
		Seq:      inst.Seq,
		Inputs:   inst.Inputs().Values(),
		Output:   inst.Output(),
	}
}

// Workspace returns the view of the named workspace, or false when it is
// the challenge workspace and no challenge is active.
func (s Snapshot) Workspace(kind domain.WorkspaceKind) (WorkspaceView, bool) {
	switch kind {
	case domain.WorkspaceBuild:
		return s.Build, true
	case domain.WorkspaceChallenge:
		if s.Challenge == nil {
			return WorkspaceView{}, false
		}
		return s.Challenge.Workspace, true
	}
	return WorkspaceView{}, false
}
