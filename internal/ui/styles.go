package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the pre-built lipgloss styles shared by all views.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
	Notice   lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A3BE8C")).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#88C0D0")),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ECEFF4")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4C566A")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A3BE8C")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BF616A")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4C566A")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#434C5E")).
			Padding(1, 2),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
}
