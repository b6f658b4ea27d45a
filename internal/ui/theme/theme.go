package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ladzin/modula/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Priority colors
	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color
	PriorityUrgent lipgloss.Color

	// Pipeline stage colors
	StatusIcebox     lipgloss.Color
	StatusTodo       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusTesting    lipgloss.Color
	StatusDone       lipgloss.Color
}

// StatusColor maps a pipeline stage to its theme color
func (t Theme) StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusIcebox:
		return t.StatusIcebox
	case model.StatusTodo:
		return t.StatusTodo
	case model.StatusInProgress:
		return t.StatusInProgress
	case model.StatusTesting:
		return t.StatusTesting
	case model.StatusDone:
		return t.StatusDone
	default:
		return t.Foreground
	}
}

// PriorityColor maps a priority to its theme color
func (t Theme) PriorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityLow:
		return t.PriorityLow
	case model.PriorityHigh:
		return t.PriorityHigh
	case model.PriorityUrgent:
		return t.PriorityUrgent
	default:
		return t.PriorityMedium
	}
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header        lipgloss.Style
	Footer        lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	Tag           lipgloss.Style
	DueDate       lipgloss.Style
	TaskNormal    lipgloss.Style
	TaskSelected  lipgloss.Style
	TaskDone      lipgloss.Style
	TaskOverdue   lipgloss.Style
	Timer         lipgloss.Style
	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
	Column        lipgloss.Style
	ColumnActive  lipgloss.Style
	Node          lipgloss.Style
	NodeManual    lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Tag: lipgloss.NewStyle().
			Foreground(t.Info).
			Padding(0, 1),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		Timer: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		ColumnActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Node: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		NodeManual: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Warning).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Forest,
	Styles: NewStyles(Forest),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Forest,
		Slate,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
