// Package tui is the terminal front end of the sandbox. The model drives
// an in-process sandbox.Service, one keystroke per gesture, and renders the
// returned snapshot with lipgloss.
//
// The model is used only from the bubbletea event loop.
package tui

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// Canvas cells are this many canvas units wide and high.
const (
	cellWidth  = 16.0
	cellHeight = 32.0
)

var modeOrder = []domain.Mode{domain.ModeLearn, domain.ModeBuild, domain.ModeChallenges}

type cell struct {
	col, row int
}

// Model is the bubbletea model for one sandbox session.
type Model struct {
	ctx context.Context
	svc sandbox.Service

	snap       sandbox.Snapshot
	challenges []domain.Challenge

	listCursor int
	cursor     cell
	grabbed    uuid.UUID

	status    string
	statusErr bool

	styles   Styles
	width    int
	quitting bool
}

// NewModel creates a session on svc and a model showing it.
func NewModel(ctx context.Context, svc sandbox.Service) (Model, error) {
	snap, err := svc.CreateSession(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("create session: %w", err)
	}
	return Model{
		ctx:        ctx,
		svc:        svc,
		snap:       snap,
		challenges: svc.Challenges(),
		styles:     DefaultStyles(),
	}, nil
}

// SessionID returns the id of the session the model drives.
func (m Model) SessionID() uuid.UUID {
	return m.snap.SessionID
}

// Snapshot returns the last state received from the service.
func (m Model) Snapshot() sandbox.Snapshot {
	return m.snap
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.cycleMode(1)
		return m, nil
	case "shift+tab":
		m.cycleMode(-1)
		return m, nil
	}

	m.status = ""
	m.statusErr = false

	switch m.snap.Mode {
	case domain.ModeLearn:
		m.handleLearnKey(key)
	case domain.ModeBuild:
		m.handleWorkspaceKey(domain.WorkspaceBuild, key)
	case domain.ModeChallenges:
		if m.snap.Challenge == nil {
			m.handleListKey(key)
		} else {
			m.handleChallengeKey(key)
		}
	}
	return m, nil
}

func (m *Model) cycleMode(step int) {
	idx := 0
	for i, mode := range modeOrder {
		if mode == m.snap.Mode {
			idx = i
		}
	}
	next := modeOrder[(idx+step+len(modeOrder))%len(modeOrder)]
	m.grabbed = uuid.Nil
	m.apply(m.svc.SelectMode(m.ctx, m.snap.SessionID, next))
}

func (m *Model) handleLearnKey(key string) {
	kinds := logic.Kinds()
	idx := 0
	for i, k := range kinds {
		if k == m.snap.Learn.Selected {
			idx = i
		}
	}

	switch key {
	case "left", "h":
		idx = (idx - 1 + len(kinds)) % len(kinds)
		m.apply(m.svc.SelectGate(m.ctx, m.snap.SessionID, kinds[idx]))
	case "right", "l":
		idx = (idx + 1) % len(kinds)
		m.apply(m.svc.SelectGate(m.ctx, m.snap.SessionID, kinds[idx]))
	case "t":
		m.apply(m.svc.ToggleTruthTable(m.ctx, m.snap.SessionID))
	}
}

func (m *Model) handleListKey(key string) {
	switch key {
	case "up", "k":
		if m.listCursor > 0 {
			m.listCursor--
		}
	case "down", "j":
		if m.listCursor < len(m.challenges)-1 {
			m.listCursor++
		}
	case "enter":
		if len(m.challenges) == 0 {
			return
		}
		m.cursor = cell{}
		m.apply(m.svc.StartChallenge(m.ctx, m.snap.SessionID, m.challenges[m.listCursor].ID))
	}
}

func (m *Model) handleChallengeKey(key string) {
	switch key {
	case "v":
		result, err := m.svc.CheckChallenge(m.ctx, m.snap.SessionID)
		if err != nil {
			m.fail(err)
			return
		}
		m.status = result.Message
		m.refresh()
	case "backspace":
		m.grabbed = uuid.Nil
		m.apply(m.svc.BackToList(m.ctx, m.snap.SessionID))
	case "esc":
		ws, _ := m.snap.Workspace(domain.WorkspaceChallenge)
		if ws.Pending == nil && m.grabbed == uuid.Nil {
			m.apply(m.svc.BackToList(m.ctx, m.snap.SessionID))
			return
		}
		m.handleWorkspaceKey(domain.WorkspaceChallenge, key)
	default:
		m.handleWorkspaceKey(domain.WorkspaceChallenge, key)
	}
}

func (m *Model) handleWorkspaceKey(kind domain.WorkspaceKind, key string) {
	ws, ok := m.snap.Workspace(kind)
	if !ok {
		return
	}
	cols, rows := gridSize(ws.Canvas)

	switch key {
	case "up", "k":
		m.cursor.row = clampInt(m.cursor.row-1, 0, rows-1)
	case "down", "j":
		m.cursor.row = clampInt(m.cursor.row+1, 0, rows-1)
	case "left", "h":
		m.cursor.col = clampInt(m.cursor.col-1, 0, cols-1)
	case "right", "l":
		m.cursor.col = clampInt(m.cursor.col+1, 0, cols-1)

	case "1", "2", "3", "4", "5", "6":
		k := logic.Kinds()[int(key[0]-'1')]
		m.grabbed = uuid.Nil
		m.apply(m.svc.BeginPlacement(m.ctx, m.snap.SessionID, kind, k))

	case "enter":
		if m.grabbed != uuid.Nil && ws.Pending == nil {
			p := m.cursorPoint()
			p.X -= ws.Footprint.Width / 2
			p.Y -= ws.Footprint.Height / 2
			id := m.grabbed
			m.grabbed = uuid.Nil
			m.applyChange(m.svc.MoveGate(m.ctx, m.snap.SessionID, kind, id, p))
			return
		}
		m.applyChange(m.svc.CompletePlacement(m.ctx, m.snap.SessionID, kind, m.cursorPoint()))

	case "esc":
		if ws.Pending != nil {
			m.apply(m.svc.CancelPlacement(m.ctx, m.snap.SessionID, kind))
		}
		m.grabbed = uuid.Nil

	case "m":
		if g, ok := gateAt(ws, m.cursorPoint()); ok {
			m.grabbed = g.ID
			m.status = fmt.Sprintf("moving %s, enter to drop", g.Kind)
		}

	case "x":
		g, ok := gateAt(ws, m.cursorPoint())
		if !ok {
			return
		}
		if _, err := m.svc.RemoveGate(m.ctx, m.snap.SessionID, kind, g.ID); err != nil {
			m.fail(err)
			return
		}
		if m.grabbed == g.ID {
			m.grabbed = uuid.Nil
		}
		m.refresh()

	case "X":
		m.grabbed = uuid.Nil
		m.apply(m.svc.ClearCanvas(m.ctx, m.snap.SessionID, kind))

	case "a", "b", "c":
		name := domain.InputName(string(key[0] - 'a' + 'A'))
		m.apply(m.svc.ToggleInput(m.ctx, m.snap.SessionID, kind, name))
	}
}

// cursorPoint is the canvas point at the centre of the cursor cell.
func (m Model) cursorPoint() domain.Point {
	return domain.Point{
		X: float64(m.cursor.col)*cellWidth + cellWidth/2,
		Y: float64(m.cursor.row)*cellHeight + cellHeight/2,
	}
}

func (m *Model) apply(snap sandbox.Snapshot, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.snap = snap
}

func (m *Model) applyChange(change sandbox.GateChange, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.snap = change.Session
	if !change.Placed && change.Gate == nil {
		m.status = "nothing to drop"
	}
}

func (m *Model) refresh() {
	m.apply(m.svc.Snapshot(m.ctx, m.snap.SessionID))
}

func (m *Model) fail(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// gateAt returns the most recently placed gate whose footprint covers p.
func gateAt(ws sandbox.WorkspaceView, p domain.Point) (sandbox.GateView, bool) {
	gates := sortedGates(ws.Gates)
	for i := len(gates) - 1; i >= 0; i-- {
		g := gates[i]
		if p.X >= g.Position.X && p.X < g.Position.X+ws.Footprint.Width &&
			p.Y >= g.Position.Y && p.Y < g.Position.Y+ws.Footprint.Height {
			return g, true
		}
	}
	return sandbox.GateView{}, false
}

func sortedGates(gates []sandbox.GateView) []sandbox.GateView {
	out := append([]sandbox.GateView(nil), gates...)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func gridSize(canvas domain.Size) (cols, rows int) {
	cols = int(canvas.Width / cellWidth)
	rows = int(canvas.Height / cellHeight)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run plays one session in the terminal and ends it when the program exits.
func Run(ctx context.Context, svc sandbox.Service, opts ...tea.ProgramOption) error {
	m, err := NewModel(ctx, svc)
	if err != nil {
		return err
	}
	defer func() { _ = svc.EndSession(context.Background(), m.SessionID()) }()

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run sandbox: %w", err)
	}
	return nil
}
