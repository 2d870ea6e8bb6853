package terminal

import "github.com/charmbracelet/lipgloss"

// Style definitions
var (
	primaryColor   = lipgloss.Color("#4682b4") // steelblue
	secondaryColor = lipgloss.Color("#64748b")
	errorColor     = lipgloss.Color("#ef4444")
	mutedColor     = lipgloss.Color("#94a3b8")

	baseStyle = lipgloss.NewStyle().
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	barStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	insideValueStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("#ffffff"))

	outsideValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	axisStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
