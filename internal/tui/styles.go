package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for completed
	warnColor      = lipgloss.Color("#D7AF5F") // Amber for in progress
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for blocked/errors

	// titleStyle for headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// subtleStyle for hints/help text
	subtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// selectedStyle for the cursor row
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// errorStyle for error messages
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// boxStyle for the detail panel
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)
)
