package tui

import "github.com/charmbracelet/lipgloss"

const (
	padding   = 2
	maxNights = 10
)

type styles struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Recording lipgloss.Style
	Idle      lipgloss.Style
	Selected  lipgloss.Style
	Hint      lipgloss.Style
	Flash     lipgloss.Style
	Err       lipgloss.Style
	Detail    lipgloss.Style
}

func newStyles(darkTheme bool) styles {
	highlight := lipgloss.Color("#1F1F1F")
	if darkTheme {
		highlight = lipgloss.Color("#F5F5F5")
	}

	return styles{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B0DB43")),
		Idle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#12EAEA")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(highlight),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Flash:     lipgloss.NewStyle().Foreground(lipgloss.Color("#C492B1")),
		Err:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginTop(1),
	}
}
