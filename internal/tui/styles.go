package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("99")  // Purple
	colorAccent  = lipgloss.Color("205") // Pink
	colorOK      = lipgloss.Color("42")  // Green
	colorError   = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("241") // Gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	deviceStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	padStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(colorOK)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorError)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)
