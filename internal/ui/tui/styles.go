package tui

import "github.com/charmbracelet/lipgloss"

var (
	workColor  = lipgloss.Color("#e8be42")
	breakColor = lipgloss.Color("#60be8c")
	mutedColor = lipgloss.Color("#6e738d")
	errorColor = lipgloss.Color("#ed8796")
)

// Styles holds the terminal UI styles.
type Styles struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Work    lipgloss.Style
	Break   lipgloss.Style
	Timer   lipgloss.Style
	Muted   lipgloss.Style
	Notice  lipgloss.Style
	Error   lipgloss.Style
	HelpKey lipgloss.Style
}

// NewStyles creates the default styles.
func NewStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 3),
		Title:   lipgloss.NewStyle().Bold(true),
		Work:    lipgloss.NewStyle().Foreground(workColor).Bold(true),
		Break:   lipgloss.NewStyle().Foreground(breakColor).Bold(true),
		Timer:   lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1),
		Muted:   lipgloss.NewStyle().Foreground(mutedColor),
		Notice:  lipgloss.NewStyle().Italic(true),
		Error:   lipgloss.NewStyle().Foreground(errorColor),
		HelpKey: lipgloss.NewStyle().Foreground(workColor).Bold(true),
	}
}
