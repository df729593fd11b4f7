package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorAccent  = lipgloss.Color("#2196F3")
	colorLoss    = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#6b7280")
)

type styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Value    lipgloss.Style
	Badge    lipgloss.Style
	Profit   lipgloss.Style
	Loss     lipgloss.Style
	Muted    lipgloss.Style
	Panel    lipgloss.Style
	Cursor   string
	NoCursor string
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Label:    lipgloss.NewStyle().Width(24),
		Focused:  lipgloss.NewStyle().Width(24).Bold(true).Foreground(colorAccent),
		Value:    lipgloss.NewStyle().Width(10).Align(lipgloss.Right).Bold(true),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorPrimary).Padding(0, 1),
		Profit:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Loss:     lipgloss.NewStyle().Bold(true).Foreground(colorLoss),
		Muted:    lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Cursor:   "> ",
		NoCursor: "  ",
	}
}
