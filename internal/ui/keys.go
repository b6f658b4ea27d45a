package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings
type KeyMap struct {
	// Views
	TreeView      key.Binding
	KanbanView    key.Binding
	TimelineView  key.Binding
	FlowchartView key.Binding

	// Project switching
	NextProject key.Binding
	NewProject  key.Binding

	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TreeView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tree"),
		),
		KanbanView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "kanban"),
		),
		TimelineView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "timeline"),
		),
		FlowchartView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "flowchart"),
		),
		NextProject: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next project"),
		),
		NewProject: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "new project"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TreeView, k.KanbanView, k.TimelineView, k.FlowchartView, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TreeView, k.KanbanView, k.TimelineView, k.FlowchartView},
		{k.NextProject, k.NewProject, k.Search},
		{k.Help, k.Quit},
	}
}
