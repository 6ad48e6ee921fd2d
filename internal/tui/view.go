package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("gatelab"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.snap.Mode {
	case domain.ModeLearn:
		b.WriteString(m.renderLearn())
	case domain.ModeBuild:
		b.WriteString(m.renderWorkspace(m.snap.Build))
	case domain.ModeChallenges:
		if m.snap.Challenge == nil {
			b.WriteString(m.renderChallengeList())
		} else {
			b.WriteString(m.renderChallenge(*m.snap.Challenge))
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Failure
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(m.help()))
	return b.String()
}

func (m Model) renderTabs() string {
	labels := map[domain.Mode]string{
		domain.ModeLearn:      "Learn",
		domain.ModeBuild:      "Build",
		domain.ModeChallenges: "Challenges",
	}
	tabs := make([]string, 0, len(modeOrder))
	for _, mode := range modeOrder {
		style := m.styles.Tab
		if mode == m.snap.Mode {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(labels[mode]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderLearn() string {
	learn := m.snap.Learn

	palette := make([]string, 0, len(logic.Kinds()))
	for _, k := range logic.Kinds() {
		style := m.styles.Tab
		if k == learn.Selected {
			style = m.styles.ActiveTab
		}
		palette = append(palette, style.Render(k.String()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, palette...))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Selected.Render(fmt.Sprintf("%s  %s", learn.Selected, learn.Glyph)))
	b.WriteString("\n")
	b.WriteString(learn.Description)
	b.WriteString("\n")
	if learn.ShowTruthTable {
		b.WriteString("\n")
		b.WriteString(truthTable(learn.Selected, learn.TruthTable))
		b.WriteString("\n")
	}
	return b.String()
}

// truthTable renders rows with one column per input and an output column.
func truthTable(k logic.Kind, rows []logic.Row) string {
	headers := []string{"A", "B", "Out"}
	if k.Unary() {
		headers = []string{"A", "Out"}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, row := range rows {
		cells := make([]string, 0, len(row.Inputs)+1)
		for _, in := range row.Inputs {
			cells = append(cells, bit(in))
		}
		cells = append(cells, bit(row.Output))
		t.Row(cells...)
	}
	return t.Render()
}

func (m Model) renderChallengeList() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Challenges"))
	b.WriteString("\n")
	for i, ch := range m.challenges {
		line := fmt.Sprintf("%s. %s  [%s]  %s", ch.ID, ch.Title, ch.Difficulty, ch.Target)
		if i == m.listCursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderChallenge(cv sandbox.ChallengeView) string {
	ch := cv.Challenge

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("%s  [%s]", ch.Title, ch.Difficulty)))
	b.WriteString("\n")
	b.WriteString(ch.Description)
	b.WriteString("\n")
	b.WriteString("Target: " + m.styles.Selected.Render(ch.Target))
	b.WriteString("\n\n")
	b.WriteString(m.renderWorkspace(cv.Workspace))

	if r := cv.Result; r != nil {
		b.WriteString("\n")
		if r.Correct {
			b.WriteString(m.styles.Success.Render(r.Message))
		} else {
			b.WriteString(m.styles.Failure.Render(r.Message))
			if r.FailingCase != nil {
				b.WriteString(m.styles.Muted.Render("  fails at " + r.FailingCase.String()))
			}
		}
		if r.Stale {
			b.WriteString(m.styles.Muted.Render("  (circuit changed since this check)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderWorkspace(ws sandbox.WorkspaceView) string {
	var b strings.Builder

	inputs := make([]string, 0, 3)
	for _, name := range ws.Inputs.Names() {
		v := ws.Inputs.Get(name)
		style := m.styles.InputOff
		if v {
			style = m.styles.InputOn
		}
		inputs = append(inputs, style.Render(fmt.Sprintf("%s=%s", name, bit(v))))
	}
	b.WriteString("Inputs: " + strings.Join(inputs, "  "))

	out := "-"
	if ws.Output != nil {
		out = bit(*ws.Output)
	}
	b.WriteString("    Output: " + out)
	if ws.Pending != nil {
		b.WriteString("    Placing: " + m.styles.Selected.Render(ws.Pending.String()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Canvas.Render(m.renderCanvas(ws)))
	return b.String()
}

// renderCanvas draws each gate as a two line label at its cell position,
// later gates over earlier ones, with the cursor cell highlighted.
func (m Model) renderCanvas(ws sandbox.WorkspaceView) string {
	cols, rows := gridSize(ws.Canvas)
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = m.styles.Muted.Render("·")
		}
	}

	span := int(ws.Footprint.Width / cellWidth)
	if span < 1 {
		span = 1
	}
	for _, g := range sortedGates(ws.Gates) {
		style := m.styles.GateOff
		if g.Output {
			style = m.styles.GateOn
		}
		if g.ID == m.grabbed && m.grabbed != uuid.Nil {
			style = m.styles.Grabbed
		}

		col := int(g.Position.X / cellWidth)
		row := int(g.Position.Y / cellHeight)
		lines := []string{
			fmt.Sprintf("%s=%s", g.Kind, bit(g.Output)),
			"in " + bits(g.Inputs),
		}
		for i, line := range lines {
			writeLabel(grid, row+i, col, span, line, style)
		}
	}

	if m.cursor.row < rows && m.cursor.col < cols {
		grid[m.cursor.row][m.cursor.col] = m.styles.Cursor.Render("+")
	}

	out := make([]string, rows)
	for r := range grid {
		out[r] = strings.Join(grid[r], "")
	}
	return strings.Join(out, "\n")
}

func writeLabel(grid [][]string, row, col, span int, text string, style lipgloss.Style) {
	if row < 0 || row >= len(grid) {
		return
	}
	runes := []rune(text)
	for i := 0; i < span && col+i < len(grid[row]); i++ {
		ch := " "
		if i < len(runes) {
			ch = string(runes[i])
		}
		grid[row][col+i] = style.Render(ch)
	}
}

func (m Model) help() string {
	switch m.snap.Mode {
	case domain.ModeLearn:
		return "←/→ gate  t truth table  tab mode  q quit"
	case domain.ModeChallenges:
		if m.snap.Challenge == nil {
			return "↑/↓ choose  enter start  tab mode  q quit"
		}
		return "1-6 pick  arrows move  enter drop  m move  x remove  X clear  a/b/c inputs  v check  esc back  q quit"
	default:
		return "1-6 pick  arrows move  enter drop  m move  x remove  X clear  a/b inputs  tab mode  q quit"
	}
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func bits(vs []bool) string {
	var b strings.Builder
	for _, v := range vs {
		b.WriteString(bit(v))
	}
	return b.String()
}
