package theme

import "github.com/charmbracelet/lipgloss"

// Slate theme - muted blue-gray palette
var Slate = Theme{
	Name: "slate",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"),
	Secondary: lipgloss.Color("#81A1C1"),
	Success:   lipgloss.Color("#A3BE8C"),
	Warning:   lipgloss.Color("#EBCB8B"),
	Error:     lipgloss.Color("#BF616A"),
	Info:      lipgloss.Color("#5E81AC"),

	PriorityLow:    lipgloss.Color("#A3BE8C"),
	PriorityMedium: lipgloss.Color("#EBCB8B"),
	PriorityHigh:   lipgloss.Color("#D08770"),
	PriorityUrgent: lipgloss.Color("#BF616A"),

	StatusIcebox:     lipgloss.Color("#4C566A"),
	StatusTodo:       lipgloss.Color("#BF616A"),
	StatusInProgress: lipgloss.Color("#EBCB8B"),
	StatusTesting:    lipgloss.Color("#B48EAD"),
	StatusDone:       lipgloss.Color("#A3BE8C"),
}
