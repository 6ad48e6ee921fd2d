package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#8BC34A")
	colorMuted  = lipgloss.Color("#6B7280")
	colorOn     = lipgloss.Color("#FFC107")
	colorError  = lipgloss.Color("#E53935")
	colorInfo   = lipgloss.Color("#2196F3")
)

// Styles groups every lipgloss style the sandbox view uses.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Muted     lipgloss.Style
	Canvas    lipgloss.Style
	Cursor    lipgloss.Style
	GateOn    lipgloss.Style
	GateOff   lipgloss.Style
	Grabbed   lipgloss.Style
	InputOn   lipgloss.Style
	InputOff  lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	Status    lipgloss.Style
	Selected  lipgloss.Style
}

// DefaultStyles returns the sandbox palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(colorAccent),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Canvas:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		GateOn:    lipgloss.NewStyle().Bold(true).Foreground(colorOn),
		GateOff:   lipgloss.NewStyle().Foreground(colorInfo),
		Grabbed:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		InputOn:   lipgloss.NewStyle().Bold(true).Foreground(colorOn),
		InputOff:  lipgloss.NewStyle().Foreground(colorMuted),
		Success:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Failure:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Status:    lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	}
}
