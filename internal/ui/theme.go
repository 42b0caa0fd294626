package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Border  lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style

	KindDay     lipgloss.Style
	KindWeek    lipgloss.Style
	KindMonth   lipgloss.Style
	KindQuarter lipgloss.Style
	KindYear    lipgloss.Style
}

var DefaultTheme = Theme{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:   lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1),
	Hint:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),

	KindDay:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	KindWeek:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
	KindMonth:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	KindQuarter: lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C2E7")),
	KindYear:    lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7")),
}

// KindStyle returns the accent style for a period kind name.
func (t Theme) KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "day":
		return t.KindDay
	case "week":
		return t.KindWeek
	case "month":
		return t.KindMonth
	case "quarter":
		return t.KindQuarter
	case "year":
		return t.KindYear
	default:
		return t.Value
	}
}
