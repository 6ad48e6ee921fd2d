package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

var testLayout = Layout{Canvas: Size{Width: 800, Height: 384}, Footprint: DefaultFootprint}

var threeInput = Challenge{
	ID:       "3",
	Title:    "Complex Boolean Expression",
	Target:   "(A AND B) OR (NOT C)",
	Inputs:   []InputName{InputA, InputB, InputC},
	NotInput: InputC,
	Scoring:  ScoringKindPattern,
}

// stubChecker reports whatever result it was built with and records calls.
type stubChecker struct {
	result ChallengeResult
	calls  int
	placed []Instance
}

func (c *stubChecker) Check(_ Challenge, placed []Instance) ChallengeResult {
	c.calls++
	c.placed = placed
	return c.result
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(testLayout)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, ModeLearn, s.Navigator().Mode())
	assert.Equal(t, logic.AND, s.Learn().Selected)
	assert.False(t, s.Learn().ShowTruthTable)
	assert.Nil(t, s.Active())
	assert.Equal(t, []InputName{InputA, InputB}, s.Build().Bank().Names())
}

func TestSessionLearnState(t *testing.T) {
	s := NewSession(testLayout)
	require.NoError(t, s.SelectGate(logic.XOR))
	assert.Equal(t, logic.XOR, s.Learn().Selected)
	assert.ErrorIs(t, s.SelectGate(logic.Kind(40)), ErrInvalidKind)

	assert.True(t, s.ToggleTruthTable())
	assert.False(t, s.ToggleTruthTable())
}

func TestSessionModeSwitchResetsChallenge(t *testing.T) {
	s := NewSession(testLayout)
	s.StartChallenge(threeInput)
	assert.Equal(t, ModeChallenges, s.Navigator().Mode())

	_, err := s.Place(WorkspaceChallenge, logic.AND, 10, 10)
	require.NoError(t, err)
	_, err = s.Toggle(WorkspaceChallenge, InputC)
	require.NoError(t, err)

	s.BackToList()
	_, active := s.Navigator().ActiveChallenge()
	assert.False(t, active)
	_, err = s.Workspace(WorkspaceChallenge)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)

	s.StartChallenge(threeInput)
	ws, err := s.Workspace(WorkspaceChallenge)
	require.NoError(t, err)
	assert.Equal(t, 0, ws.Canvas().Len())
	for name, v := range ws.Bank().Values() {
		assert.False(t, v, "input %s resets to false", name)
	}
	assert.Nil(t, s.Active().Result)
}

func TestSessionWorkspacesAreIndependent(t *testing.T) {
	s := NewSession(testLayout)
	s.StartChallenge(threeInput)

	_, err := s.Place(WorkspaceBuild, logic.OR, 0, 0)
	require.NoError(t, err)
	_, err = s.Toggle(WorkspaceBuild, InputA)
	require.NoError(t, err)

	ws, _ := s.Workspace(WorkspaceChallenge)
	assert.Equal(t, 0, ws.Canvas().Len())
	assert.False(t, ws.Bank().Get(InputA))

	_, err = s.Toggle(WorkspaceBuild, InputC)
	assert.ErrorIs(t, err, ErrUnknownInput, "free build declares only A and B")
}

func TestSessionChallengeNotReadsC(t *testing.T) {
	s := NewSession(testLayout)
	s.StartChallenge(threeInput)

	not, err := s.Place(WorkspaceChallenge, logic.NOT, 0, 0)
	require.NoError(t, err)
	assert.True(t, not.Output(), "NOT C with C false")

	_, err = s.Toggle(WorkspaceChallenge, InputA)
	require.NoError(t, err)
	ws, _ := s.Workspace(WorkspaceChallenge)
	out, _ := ws.Canvas().Output()
	assert.True(t, out, "toggling A does not affect NOT C")

	_, err = s.Toggle(WorkspaceChallenge, InputC)
	require.NoError(t, err)
	out, _ = ws.Canvas().Output()
	assert.False(t, out)
}

func TestSessionCheckLifecycle(t *testing.T) {
	s := NewSession(testLayout)
	checker := &stubChecker{result: ChallengeResult{Correct: true, Message: "ok"}}

	_, err := s.Check(checker)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)

	s.StartChallenge(threeInput)
	inst, _ := s.Place(WorkspaceChallenge, logic.AND, 0, 0)

	result, err := s.Check(checker)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 1, checker.calls)
	require.Len(t, checker.placed, 1)
	require.NotNil(t, s.Active().Result)
	assert.False(t, s.Active().Result.Stale)

	_, err = s.Toggle(WorkspaceChallenge, InputB)
	require.NoError(t, err)
	assert.True(t, s.Active().Result.Stale, "result is kept but flagged after edits")

	_, err = s.Check(checker)
	require.NoError(t, err)
	assert.False(t, s.Active().Result.Stale)

	_, err = s.Remove(WorkspaceChallenge, inst.ID)
	require.NoError(t, err)
	assert.True(t, s.Active().Result.Stale)

	require.NoError(t, s.Clear(WorkspaceChallenge))
	assert.Nil(t, s.Active().Result, "clear discards the result")
}

func TestSessionPickAndPlace(t *testing.T) {
	s := NewSession(testLayout)
	_, ok, err := s.CompletePlacement(WorkspaceBuild, Point{X: 50, Y: 50})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.BeginPlacement(WorkspaceBuild, logic.NAND))
	inst, ok, err := s.CompletePlacement(WorkspaceBuild, Point{X: 50, Y: 50})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, logic.NAND, inst.Kind)
	assert.Equal(t, Point{X: 0, Y: 20}, inst.Position)

	require.NoError(t, s.BeginPlacement(WorkspaceBuild, logic.OR))
	require.NoError(t, s.CancelPlacement(WorkspaceBuild))
	_, ok, _ = s.CompletePlacement(WorkspaceBuild, Point{})
	assert.False(t, ok)

	assert.ErrorIs(t, s.BeginPlacement(WorkspaceChallenge, logic.OR), ErrNoActiveChallenge)
	assert.ErrorIs(t, s.BeginPlacement("canvas", logic.OR), ErrInvalidWorkspace)
}

func TestSessionMoveAndRemove(t *testing.T) {
	s := NewSession(testLayout)
	inst, err := s.Place(WorkspaceBuild, logic.XOR, 0, 0)
	require.NoError(t, err)

	moved, err := s.Move(WorkspaceBuild, inst.ID, 42, 24)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 42, Y: 24}, moved.Position)

	removed, err := s.Remove(WorkspaceBuild, inst.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Remove(WorkspaceBuild, inst.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.Move(WorkspaceBuild, inst.ID, 1, 1)
	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestSessionClone(t *testing.T) {
	s := NewSession(testLayout)
	s.StartChallenge(threeInput)
	_, _ = s.Place(WorkspaceChallenge, logic.AND, 0, 0)
	_, _ = s.Check(&stubChecker{result: ChallengeResult{Message: "no"}})

	cp := s.Clone()
	_, _ = s.Place(WorkspaceChallenge, logic.OR, 0, 0)
	_, _ = s.Toggle(WorkspaceBuild, InputA)

	assert.Equal(t, 1, cp.Active().Workspace.Canvas().Len())
	assert.False(t, cp.Active().Result.Stale)
	assert.True(t, s.Active().Result.Stale)
	assert.False(t, cp.Build().Bank().Get(InputA))
}
