package domain

import (
	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// WorkspaceKind names one of a session's two independent workspaces.
type WorkspaceKind string

const (
	WorkspaceBuild     WorkspaceKind = "build"
	WorkspaceChallenge WorkspaceKind = "challenge"
)

// ParseWorkspaceKind validates a workspace name.
func ParseWorkspaceKind(s string) (WorkspaceKind, error) {
	switch WorkspaceKind(s) {
	case WorkspaceBuild, WorkspaceChallenge:
		return WorkspaceKind(s), nil
	default:
		return "", NewValidationError("workspace", "must be build or challenge", ErrInvalidWorkspace)
	}
}

// Workspace pairs an input bank with the canvas it feeds. Toggling goes
// through the workspace so the bank change and the canvas recompute happen
// in one step.
type Workspace struct {
	bank   InputBank
	canvas *Canvas
}

// NewWorkspace creates a workspace with all inputs false and an empty canvas.
func NewWorkspace(layout Layout, wiring Wiring, inputs ...InputName) *Workspace {
	return &Workspace{
		bank:   NewInputBank(inputs...),
		canvas: NewCanvas(layout.Canvas, layout.Footprint, wiring),
	}
}

// Bank returns the current input values.
func (w *Workspace) Bank() InputBank { return w.bank }

// Canvas returns the workspace's canvas.
func (w *Workspace) Canvas() *Canvas { return w.canvas }

// Toggle flips an input and recomputes every instance on the canvas.
func (w *Workspace) Toggle(name InputName) (InputBank, error) {
	next, err := w.bank.Toggle(name)
	if err != nil {
		return w.bank, err
	}
	w.bank = next
	w.canvas.Reinputs(w.bank)
	return w.bank, nil
}

// Place puts a gate at (x, y) fed by the current bank.
func (w *Workspace) Place(kind logic.Kind, x, y float64) (Instance, error) {
	return w.canvas.Place(kind, x, y, w.bank)
}

// BeginPlacement picks a gate kind for a later drop.
func (w *Workspace) BeginPlacement(kind logic.Kind) error {
	return w.canvas.BeginPlacement(kind)
}

// CompletePlacement drops the picked gate at p.
func (w *Workspace) CompletePlacement(p Point) (Instance, bool) {
	return w.canvas.CompletePlacement(p, w.bank)
}

// CancelPlacement forgets the picked gate.
func (w *Workspace) CancelPlacement() {
	w.canvas.CancelPlacement()
}

// Move repositions an instance.
func (w *Workspace) Move(id uuid.UUID, x, y float64) (Instance, error) {
	return w.canvas.Move(id, x, y)
}

// Remove deletes an instance; unknown ids are ignored.
func (w *Workspace) Remove(id uuid.UUID) bool {
	return w.canvas.Remove(id)
}

// Clear empties the canvas. Inputs keep their values.
func (w *Workspace) Clear() {
	w.canvas.Clear()
}

// Clone returns a deep copy of the workspace.
func (w *Workspace) Clone() *Workspace {
	return &Workspace{bank: w.bank, canvas: w.canvas.Clone()}
}
