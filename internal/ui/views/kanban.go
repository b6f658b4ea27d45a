package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ladzin/modula/internal/model"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui/theme"
)

// KanbanMode represents the current input mode
type KanbanMode int

const (
	KanbanModeNormal KanbanMode = iota
	KanbanModeAdd
	KanbanModeEdit
	KanbanModeConfirmDelete
	KanbanModeSubtasks
	KanbanModeSubtaskAdd
)

// KanbanView shows the current project's tasks in five pipeline
// columns across all modules
type KanbanView struct {
	st     *store.Store
	width  int
	height int

	project *model.Project
	columns map[model.Status][]model.Task

	currentColumn int
	cursorRow     int

	mode      KanbanMode
	textInput textinput.Model

	editTaskID   string
	deleteTaskID string
	statusMsg    string

	// subtask panel state
	subtaskTaskID string
	subtaskCursor int
}

// NewKanbanView creates a new kanban view
func NewKanbanView(st *store.Store) KanbanView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return KanbanView{
		st:        st,
		textInput: ti,
		columns:   make(map[model.Status][]model.Task),
	}
}

// Init initializes the kanban view
func (v KanbanView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v KanbanView) SetSize(width, height int) KanbanView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether keystrokes belong to a text input
func (v KanbanView) IsInputMode() bool {
	return v.mode == KanbanModeAdd || v.mode == KanbanModeEdit || v.mode == KanbanModeSubtaskAdd
}

// reload pulls the current project's tasks into columns, honoring the
// active search and tag filters
func (v *KanbanView) reload() {
	v.project = v.st.CurrentProject()
	v.columns = make(map[model.Status][]model.Task)
	if v.project == nil {
		return
	}
	filtered := v.st.FilteredTasks()
	for _, t := range filtered {
		v.columns[t.Status] = append(v.columns[t.Status], t)
	}
	if v.cursorRow >= len(v.currentTasks()) {
		v.cursorRow = 0
	}
}

func (v *KanbanView) currentStatus() model.Status {
	return model.AllStatuses[v.currentColumn]
}

func (v *KanbanView) currentTasks() []model.Task {
	return v.columns[v.currentStatus()]
}

func (v *KanbanView) selectedTask() *model.Task {
	tasks := v.currentTasks()
	if v.cursorRow < 0 || v.cursorRow >= len(tasks) {
		return nil
	}
	return &tasks[v.cursorRow]
}

// anyTimerRunning reports whether a visible card has a live timer
func (v *KanbanView) anyTimerRunning() bool {
	for _, tasks := range v.columns {
		for _, t := range tasks {
			if t.TimerRunning {
				return true
			}
		}
	}
	return false
}

// Update handles messages
func (v KanbanView) Update(msg tea.Msg) (KanbanView, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		v.reload()
		if v.anyTimerRunning() {
			return v, tickCmd()
		}
		return v, nil

	case tickMsg:
		// Re-render only; re-arm while something is running
		if v.anyTimerRunning() {
			return v, tickCmd()
		}
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case KanbanModeAdd:
			return v.handleAddMode(msg)
		case KanbanModeEdit:
			return v.handleEditMode(msg)
		case KanbanModeConfirmDelete:
			return v.handleConfirmDelete(msg)
		case KanbanModeSubtasks:
			return v.handleSubtasksMode(msg)
		case KanbanModeSubtaskAdd:
			return v.handleSubtaskAddMode(msg)
		}
		return v.handleNormalMode(msg)
	}
	return v, nil
}

func (v KanbanView) handleNormalMode(msg tea.KeyMsg) (KanbanView, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.cursorRow = 0
		}
	case "right", "l":
		if v.currentColumn < len(model.AllStatuses)-1 {
			v.currentColumn++
			v.cursorRow = 0
		}
	case "up", "k":
		if v.cursorRow > 0 {
			v.cursorRow--
		}
	case "down", "j":
		if v.cursorRow < len(v.currentTasks())-1 {
			v.cursorRow++
		}
	case "H", "shift+left":
		if t := v.selectedTask(); t != nil && v.currentColumn > 0 {
			status := model.AllStatuses[v.currentColumn-1]
			v.st.UpdateTask(t.ID, store.TaskPatch{Status: &status})
			v.reload()
		}
	case "L", "shift+right":
		if t := v.selectedTask(); t != nil && v.currentColumn < len(model.AllStatuses)-1 {
			status := model.AllStatuses[v.currentColumn+1]
			v.st.UpdateTask(t.ID, store.TaskPatch{Status: &status})
			v.reload()
		}
	case "a":
		if v.project == nil || len(v.project.Modules) == 0 {
			v.statusMsg = "create a module first (tree view)"
			return v, nil
		}
		v.mode = KanbanModeAdd
		v.textInput.Placeholder = "New task title"
		v.textInput.SetValue("")
		v.textInput.Focus()
		return v, textinput.Blink
	case "e", "enter":
		if t := v.selectedTask(); t != nil {
			v.mode = KanbanModeEdit
			v.editTaskID = t.ID
			v.textInput.SetValue(t.Title)
			v.textInput.Focus()
			return v, textinput.Blink
		}
	case "d":
		if t := v.selectedTask(); t != nil {
			v.mode = KanbanModeConfirmDelete
			v.deleteTaskID = t.ID
		}
	case "p":
		if t := v.selectedTask(); t != nil {
			next := nextPriority(t.Priority)
			v.st.UpdateTask(t.ID, store.TaskPatch{Priority: &next})
			v.reload()
		}
	case "t":
		if t := v.selectedTask(); t != nil {
			if t.TimerRunning {
				v.st.StopTimer(t.ID)
				v.statusMsg = "timer stopped"
				v.reload()
			} else {
				v.st.StartTimer(t.ID)
				v.statusMsg = "timer started"
				v.reload()
				return v, tickCmd()
			}
		}
	case "s":
		if t := v.selectedTask(); t != nil {
			v.mode = KanbanModeSubtasks
			v.subtaskTaskID = t.ID
			v.subtaskCursor = 0
		}
	case "f":
		v.cycleTagFilter()
	case "r":
		v.reload()
	}
	return v, nil
}

// cycleTagFilter steps the tag filter through every known tag and
// back to unfiltered
func (v *KanbanView) cycleTagFilter() {
	tags := v.st.TagUniverse()
	if len(tags) == 0 {
		v.statusMsg = "no tags yet"
		return
	}
	selected := v.st.SelectedTags()
	next := 0
	if len(selected) > 0 {
		for i, tag := range tags {
			if tag == selected[0] {
				next = i + 1
				break
			}
		}
	}
	if next >= len(tags) {
		v.st.SetSelectedTags(nil)
		v.statusMsg = "tag filter cleared"
	} else {
		v.st.SetSelectedTags(tags[next : next+1])
		v.statusMsg = "tag: " + tags[next]
	}
	v.reload()
}

func (v KanbanView) handleAddMode(msg tea.KeyMsg) (KanbanView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" && v.project != nil {
			moduleID := firstRegularModule(v.project)
			if moduleID == "" {
				v.statusMsg = "no module to add to"
			} else {
				v.st.CreateTask(moduleID, store.TaskDraft{
					Title:    title,
					Status:   v.currentStatus(),
					Priority: model.PriorityMedium,
				})
				v.reload()
			}
		}
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v KanbanView) handleEditMode(msg tea.KeyMsg) (KanbanView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" {
			v.st.UpdateTask(v.editTaskID, store.TaskPatch{Title: &title})
			v.reload()
		}
		v.mode = KanbanModeNormal
		v.editTaskID = ""
		v.textInput.Blur()
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.editTaskID = ""
		v.textInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v *KanbanView) subtaskPanelTask() (model.Task, bool) {
	return v.st.FindTaskByID(v.subtaskTaskID)
}

func (v KanbanView) handleSubtasksMode(msg tea.KeyMsg) (KanbanView, tea.Cmd) {
	task, found := v.subtaskPanelTask()
	if !found {
		v.mode = KanbanModeNormal
		return v, nil
	}
	switch msg.String() {
	case "esc", "q", "s":
		v.mode = KanbanModeNormal
		v.subtaskTaskID = ""
	case "j", "down":
		if v.subtaskCursor < len(task.Subtasks)-1 {
			v.subtaskCursor++
		}
	case "k", "up":
		if v.subtaskCursor > 0 {
			v.subtaskCursor--
		}
	case " ", "enter":
		if v.subtaskCursor < len(task.Subtasks) {
			st := task.Subtasks[v.subtaskCursor]
			toggled := !st.Completed
			v.st.UpdateSubtask(task.ID, st.ID, store.SubtaskPatch{Completed: &toggled})
			v.reload()
		}
	case "x", "d":
		if v.subtaskCursor < len(task.Subtasks) {
			v.st.DeleteSubtask(task.ID, task.Subtasks[v.subtaskCursor].ID)
			if v.subtaskCursor > 0 {
				v.subtaskCursor--
			}
			v.reload()
		}
	case "a":
		v.mode = KanbanModeSubtaskAdd
		v.textInput.Placeholder = "New subtask"
		v.textInput.SetValue("")
		v.textInput.Focus()
		return v, textinput.Blink
	}
	return v, nil
}

func (v KanbanView) handleSubtaskAddMode(msg tea.KeyMsg) (KanbanView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" {
			v.st.CreateSubtask(v.subtaskTaskID, title, false)
			v.reload()
		}
		v.mode = KanbanModeSubtasks
		v.textInput.Blur()
		return v, nil
	case "esc":
		v.mode = KanbanModeSubtasks
		v.textInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v KanbanView) handleConfirmDelete(msg tea.KeyMsg) (KanbanView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.st.DeleteTask(v.deleteTaskID)
		v.reload()
	}
	v.mode = KanbanModeNormal
	v.deleteTaskID = ""
	return v, nil
}

// View renders the board
func (v KanbanView) View() string {
	s := theme.Current.Styles
	if v.project == nil {
		return s.Label.Render("\n  No project selected. Press P to create one.")
	}
	if v.mode == KanbanModeSubtasks || v.mode == KanbanModeSubtaskAdd {
		return v.renderSubtaskPanel()
	}

	colWidth := v.width/len(model.AllStatuses) - 2
	if colWidth < 16 {
		colWidth = 16
	}

	now := time.Now()
	var cols []string
	for i, status := range model.AllStatuses {
		cols = append(cols, v.renderColumn(i, status, colWidth, now))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	var footer string
	switch v.mode {
	case KanbanModeAdd:
		footer = "add to " + v.currentStatus().Label() + ": " + v.textInput.View()
	case KanbanModeEdit:
		footer = "edit: " + v.textInput.View()
	case KanbanModeConfirmDelete:
		footer = "delete task? (y/n)"
	default:
		footer = v.statusMsg
		if footer == "" {
			footer = "a add · e edit · d delete · H/L move · p priority · t timer · s subtasks · f tag filter"
		}
	}
	return board + "\n" + s.Footer.Render(footer)
}

// renderSubtaskPanel draws the checklist for one task
func (v KanbanView) renderSubtaskPanel() string {
	s := theme.Current.Styles

	task, found := v.subtaskPanelTask()
	if !found {
		return s.Label.Render("  task is gone")
	}

	done, total := task.SubtaskProgress()
	title := s.PanelTitle.Render(task.Title) + " " +
		s.Label.Render(fmt.Sprintf("%d/%d", done, total))

	var lines []string
	for i, st := range task.Subtasks {
		mark := "[ ]"
		if st.Completed {
			mark = "[x]"
		}
		line := mark + " " + st.Title
		switch {
		case i == v.subtaskCursor && v.mode == KanbanModeSubtasks:
			line = s.TaskSelected.Render(line)
		case st.Completed:
			line = s.TaskDone.Render(line)
		default:
			line = s.TaskNormal.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, s.Label.Render("no subtasks; press a to add one"))
	}

	var footer string
	if v.mode == KanbanModeSubtaskAdd {
		footer = "subtask: " + v.textInput.View()
	} else {
		footer = "space toggle · a add · x delete · esc back"
	}
	return title + "\n" + s.Panel.Render(strings.Join(lines, "\n")) + "\n" + s.Footer.Render(footer)
}

func (v KanbanView) renderColumn(idx int, status model.Status, width int, now time.Time) string {
	s := theme.Current.Styles
	t := theme.Current.Theme

	header := lipgloss.NewStyle().
		Foreground(t.StatusColor(status)).
		Bold(true).
		Render(fmt.Sprintf("%s (%d)", status.Label(), len(v.columns[status])))

	var lines []string
	lines = append(lines, header)
	for row, task := range v.columns[status] {
		lines = append(lines, v.renderCard(task, idx == v.currentColumn && row == v.cursorRow, width, now))
	}

	style := s.Column.Width(width)
	if idx == v.currentColumn {
		style = s.ColumnActive.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (v KanbanView) renderCard(task model.Task, selected bool, width int, now time.Time) string {
	s := theme.Current.Styles
	t := theme.Current.Theme

	title := task.Title
	if maxTitle := width - 4; len(title) > maxTitle && maxTitle > 1 {
		title = title[:maxTitle-1] + "…"
	}

	var meta []string
	meta = append(meta, lipgloss.NewStyle().
		Foreground(t.PriorityColor(task.Priority)).
		Render("●"))
	if done, total := task.SubtaskProgress(); total > 0 {
		meta = append(meta, fmt.Sprintf("%d/%d", done, total))
	}
	if task.TimerRunning || task.TimeSpent > 0 {
		timer := model.FormatDuration(task.ElapsedSeconds(now))
		if task.TimerRunning {
			timer = "▶ " + timer
		}
		meta = append(meta, s.Timer.Render(timer))
	}
	if task.DueDate != nil {
		due := task.DueDate.Format("Jan 2")
		if task.IsOverdue(now) {
			due = s.TaskOverdue.Render(due)
		} else {
			due = s.DueDate.Render(due)
		}
		meta = append(meta, due)
	}

	line := title + " " + strings.Join(meta, " ")
	switch {
	case selected:
		return s.TaskSelected.Render(line)
	case task.Status == model.StatusDone:
		return s.TaskDone.Render(line)
	default:
		return s.TaskNormal.Render(line)
	}
}

// firstRegularModule prefers a module the user created over the
// flowchart sentinel
func firstRegularModule(p *model.Project) string {
	for i := range p.Modules {
		if p.Modules[i].Title != store.SentinelModuleTitle {
			return p.Modules[i].ID
		}
	}
	if len(p.Modules) > 0 {
		return p.Modules[0].ID
	}
	return ""
}

func nextPriority(p model.Priority) model.Priority {
	for i, pr := range model.AllPriorities {
		if pr == p {
			return model.AllPriorities[(i+1)%len(model.AllPriorities)]
		}
	}
	return model.PriorityMedium
}
