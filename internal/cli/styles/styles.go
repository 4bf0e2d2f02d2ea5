// Package styles holds the lipgloss styles used by human-readable CLI
// output.
package styles

import "charm.land/lipgloss/v2"

var (
	// TitleStyle renders list headers and entity titles
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle renders field labels like "Status:" or "Due:"
	LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// SubtleStyle renders secondary detail like ids and timestamps
	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// SuccessStyle renders confirmation markers
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	// ErrorStyle renders failure markers
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// WarningStyle renders overdue and attention markers
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
