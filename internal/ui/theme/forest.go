package theme

import "github.com/charmbracelet/lipgloss"

// Forest theme - the default green-accented palette
var Forest = Theme{
	Name: "forest",

	Background: lipgloss.Color("#1C2128"),
	Foreground: lipgloss.Color("#E6EDF3"),
	Subtle:     lipgloss.Color("#57606A"),
	Highlight:  lipgloss.Color("#2D333B"),
	Border:     lipgloss.Color("#444C56"),

	Primary:   lipgloss.Color("#00C853"),
	Secondary: lipgloss.Color("#4CAF50"),
	Success:   lipgloss.Color("#00C853"),
	Warning:   lipgloss.Color("#F59E0B"),
	Error:     lipgloss.Color("#F44336"),
	Info:      lipgloss.Color("#2196F3"),

	PriorityLow:    lipgloss.Color("#8BC34A"),
	PriorityMedium: lipgloss.Color("#FFEB3B"),
	PriorityHigh:   lipgloss.Color("#FF9800"),
	PriorityUrgent: lipgloss.Color("#F44336"),

	StatusIcebox:     lipgloss.Color("#94A3B8"),
	StatusTodo:       lipgloss.Color("#F44336"),
	StatusInProgress: lipgloss.Color("#F59E0B"),
	StatusTesting:    lipgloss.Color("#8B5CF6"),
	StatusDone:       lipgloss.Color("#00C853"),
}
