package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ladzin/modula/internal/app"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui/theme"
	"github.com/ladzin/modula/internal/ui/views"
)

// RootInput is a root-level text prompt (project creation, search)
type RootInput int

const (
	RootInputNone RootInput = iota
	RootInputNewProject
	RootInputSearch
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	st     *store.Store
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   store.View
	treeView      views.TreeView
	kanbanView    views.KanbanView
	timelineView  views.TimelineView
	flowchartView views.FlowchartView
	helpVisible   bool

	input     RootInput
	textInput textinput.Model

	statusMsg string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	st := application.Store
	return RootModel{
		app:           application,
		st:            st,
		keys:          DefaultKeyMap(),
		help:          h,
		textInput:     ti,
		currentView:   st.CurrentView(),
		treeView:      views.NewTreeView(st),
		kanbanView:    views.NewKanbanView(st),
		timelineView:  views.NewTimelineView(st),
		flowchartView: views.NewFlowchartView(st),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return refreshCmd()
}

func refreshCmd() tea.Cmd {
	return func() tea.Msg { return views.RefreshMsg{} }
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.treeView = m.treeView.SetSize(m.width, contentHeight)
		m.kanbanView = m.kanbanView.SetSize(m.width, contentHeight)
		m.timelineView = m.timelineView.SetSize(m.width, contentHeight)
		m.flowchartView = m.flowchartView.SetSize(m.width, contentHeight)

	case views.RefreshMsg:
		// Fan out so every view re-reads the store. The returned
		// commands matter: the kanban view re-arms its timer tick here.
		var cmd tea.Cmd
		m.treeView, cmd = m.treeView.Update(msg)
		cmds = append(cmds, cmd)
		m.kanbanView, cmd = m.kanbanView.Update(msg)
		cmds = append(cmds, cmd)
		m.timelineView, cmd = m.timelineView.Update(msg)
		cmds = append(cmds, cmd)
		m.flowchartView, cmd = m.flowchartView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		m.statusMsg = ""

		if m.input != RootInputNone {
			return m.handleRootInput(msg)
		}

		isInputMode := m.viewInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, 'q' only outside input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
		}

		if isInputMode {
			break // fall through to view delegation
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.TreeView):
			return m.switchView(store.ViewTree)
		case key.Matches(msg, m.keys.KanbanView):
			return m.switchView(store.ViewKanban)
		case key.Matches(msg, m.keys.TimelineView):
			return m.switchView(store.ViewTimeline)
		case key.Matches(msg, m.keys.FlowchartView):
			return m.switchView(store.ViewFlowchart)

		case key.Matches(msg, m.keys.NextProject):
			m.cycleProject()
			return m, refreshCmd()

		case key.Matches(msg, m.keys.NewProject):
			m.input = RootInputNewProject
			m.textInput.Placeholder = "New project title"
			m.textInput.SetValue("")
			m.textInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Search):
			m.input = RootInputSearch
			m.textInput.Placeholder = "Search tasks"
			m.textInput.SetValue(m.st.SearchQuery())
			m.textInput.Focus()
			return m, textinput.Blink
		}
	}

	// Delegate to current view
	switch m.currentView {
	case store.ViewTree:
		var cmd tea.Cmd
		m.treeView, cmd = m.treeView.Update(msg)
		cmds = append(cmds, cmd)
	case store.ViewKanban:
		var cmd tea.Cmd
		m.kanbanView, cmd = m.kanbanView.Update(msg)
		cmds = append(cmds, cmd)
	case store.ViewTimeline:
		var cmd tea.Cmd
		m.timelineView, cmd = m.timelineView.Update(msg)
		cmds = append(cmds, cmd)
	case store.ViewFlowchart:
		var cmd tea.Cmd
		m.flowchartView, cmd = m.flowchartView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) switchView(v store.View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.st.SetCurrentView(v)
	return m, refreshCmd()
}

func (m RootModel) viewInputMode() bool {
	switch m.currentView {
	case store.ViewTree:
		return m.treeView.IsInputMode()
	case store.ViewKanban:
		return m.kanbanView.IsInputMode()
	case store.ViewTimeline:
		return m.timelineView.IsInputMode()
	case store.ViewFlowchart:
		return m.flowchartView.IsInputMode()
	}
	return false
}

func (m *RootModel) cycleProject() {
	projects := m.st.Projects()
	if len(projects) == 0 {
		return
	}
	current := m.st.CurrentProject()
	if current == nil {
		m.st.SetCurrentProject(projects[0].ID)
		return
	}
	for i := range projects {
		if projects[i].ID == current.ID {
			next := projects[(i+1)%len(projects)]
			m.st.SetCurrentProject(next.ID)
			m.statusMsg = "project: " + next.Title
			return
		}
	}
}

func (m RootModel) handleRootInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.textInput.Value())
		switch m.input {
		case RootInputNewProject:
			if value != "" {
				p := m.st.CreateProject(store.ProjectDraft{Title: value})
				m.statusMsg = "created " + p.Title
			}
		case RootInputSearch:
			m.st.SetSearchQuery(value)
		}
		m.input = RootInputNone
		m.textInput.Blur()
		return m, refreshCmd()
	case "esc":
		if m.input == RootInputSearch {
			m.st.SetSearchQuery("")
		}
		m.input = RootInputNone
		m.textInput.Blur()
		return m, refreshCmd()
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := theme.Current.Styles
	var sections []string

	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	var content string
	if m.helpVisible {
		content = styles.Panel.Render(m.help.View(m.keys))
	} else {
		switch m.currentView {
		case store.ViewTree:
			content = m.treeView.View()
		case store.ViewKanban:
			content = m.kanbanView.View()
		case store.ViewTimeline:
			content = m.timelineView.View()
		case store.ViewFlowchart:
			content = m.flowchartView.View()
		default:
			content = styles.Panel.Render("View not implemented")
		}
	}

	// Pad so the footer sits at the bottom
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the top bar: app name, active view, project
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("modula")

	indicator := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := indicator.Render(fmt.Sprintf("[%s]", m.currentView))

	var projectName string
	if p := m.st.CurrentProject(); p != nil {
		projectName = p.Title
	} else {
		projectName = "no project"
	}
	right := indicator.Render(projectName)
	if q := m.st.SearchQuery(); q != "" {
		right = indicator.Render("search: "+q) + right
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders the status line plus key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	if m.input != RootInputNone {
		prompt := "project title: "
		if m.input == RootInputSearch {
			prompt = "search: "
		}
		return styles.Footer.Render(prompt) + m.textInput.View()
	}

	var statusLine string
	if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	hints := m.help.View(m.keys)
	if statusLine != "" {
		return statusLine + "\n" + hints
	}
	return hints
}
