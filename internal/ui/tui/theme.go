package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of the browser.
type Theme struct {
	Banner   lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Current  lipgloss.Style
	Marker   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultTheme returns the Pokédex red and white theme.
func DefaultTheme() Theme {
	return Theme{
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 2),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")),
		Current: lipgloss.NewStyle().Bold(true),
		Marker:  lipgloss.NewStyle().Faint(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
