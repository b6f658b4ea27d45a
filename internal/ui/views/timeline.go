package views

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ladzin/modula/internal/model"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui/theme"
)

// TimelineSpan selects the visible period
type TimelineSpan int

const (
	SpanWeek TimelineSpan = iota
	SpanMonth
)

// TimelineView lays the current project's tasks on a day grid keyed
// by due date. Grabbing a task and dropping it on another day
// reschedules it.
type TimelineView struct {
	st     *store.Store
	width  int
	height int

	project *model.Project
	span    TimelineSpan
	anchor  time.Time // any day inside the visible period
	cursor  time.Time // selected day

	taskCursor int
	grabbedID  string // task picked up for rescheduling
	statusMsg  string
}

// NewTimelineView creates a new timeline view
func NewTimelineView(st *store.Store) TimelineView {
	today := truncateDay(time.Now())
	return TimelineView{
		st:     st,
		span:   SpanWeek,
		anchor: today,
		cursor: today,
	}
}

// Init initializes the timeline view
func (v TimelineView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v TimelineView) SetSize(width, height int) TimelineView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether keystrokes belong to a text input
func (v TimelineView) IsInputMode() bool {
	return false
}

func (v *TimelineView) reload() {
	v.project = v.st.CurrentProject()
	if v.taskCursor >= len(v.tasksOn(v.cursor)) {
		v.taskCursor = 0
	}
}

// days returns the visible day range
func (v *TimelineView) days() []time.Time {
	var start time.Time
	var count int
	switch v.span {
	case SpanMonth:
		first := time.Date(v.anchor.Year(), v.anchor.Month(), 1, 0, 0, 0, 0, v.anchor.Location())
		start = first
		count = daysInMonth(v.anchor)
	default:
		start = startOfWeek(v.anchor)
		count = 7
	}
	out := make([]time.Time, count)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func (v *TimelineView) tasksOn(day time.Time) []model.Task {
	if v.project == nil {
		return nil
	}
	var out []model.Task
	for i := range v.project.Modules {
		for _, t := range v.project.Modules[i].Tasks {
			if t.IsDueOn(day) {
				out = append(out, t)
			}
		}
	}
	return out
}

// Update handles messages
func (v TimelineView) Update(msg tea.Msg) (TimelineView, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v TimelineView) handleKey(msg tea.KeyMsg) (TimelineView, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		v.cursor = v.cursor.AddDate(0, 0, -1)
		v.taskCursor = 0
	case "right", "l":
		v.cursor = v.cursor.AddDate(0, 0, 1)
		v.taskCursor = 0
	case "up", "k":
		if v.taskCursor > 0 {
			v.taskCursor--
		}
	case "down", "j":
		if v.taskCursor < len(v.tasksOn(v.cursor))-1 {
			v.taskCursor++
		}
	case "w":
		v.span = SpanWeek
		v.anchor = v.cursor
	case "M":
		v.span = SpanMonth
		v.anchor = v.cursor
	case "<", "pgup":
		v.shift(-1)
	case ">", "pgdown":
		v.shift(1)
	case "T":
		today := truncateDay(time.Now())
		v.anchor, v.cursor = today, today
		v.taskCursor = 0
	case " ", "space", "enter":
		v.toggleGrab()
	case "esc":
		v.grabbedID = ""
	}
	// Keep the cursor inside the visible span
	days := v.days()
	if v.cursor.Before(days[0]) || v.cursor.After(days[len(days)-1]) {
		v.anchor = v.cursor
	}
	return v, nil
}

func (v *TimelineView) shift(dir int) {
	if v.span == SpanMonth {
		v.anchor = v.anchor.AddDate(0, dir, 0)
	} else {
		v.anchor = v.anchor.AddDate(0, 0, 7*dir)
	}
	v.cursor = v.anchor
	v.taskCursor = 0
}

// toggleGrab picks the selected task up, or drops a held one onto the
// cursor day, rescheduling its due date
func (v *TimelineView) toggleGrab() {
	if v.grabbedID == "" {
		tasks := v.tasksOn(v.cursor)
		if v.taskCursor < len(tasks) {
			v.grabbedID = tasks[v.taskCursor].ID
			v.statusMsg = "moving " + tasks[v.taskCursor].Title + " — pick a day, space to drop"
		}
		return
	}
	due := time.Date(v.cursor.Year(), v.cursor.Month(), v.cursor.Day(), 23, 59, 59, 0, v.cursor.Location())
	v.st.UpdateTask(v.grabbedID, store.TaskPatch{DueDate: &due})
	v.grabbedID = ""
	v.statusMsg = "rescheduled"
	v.reload()
}

// View renders the day grid
func (v TimelineView) View() string {
	s := theme.Current.Styles
	if v.project == nil {
		return s.Label.Render("\n  No project selected. Press P to create one.")
	}

	days := v.days()
	perRow := 7
	colWidth := v.width/perRow - 2
	if colWidth < 12 {
		colWidth = 12
	}
	now := time.Now()

	var rows []string
	for i := 0; i < len(days); i += perRow {
		end := i + perRow
		if end > len(days) {
			end = len(days)
		}
		var cells []string
		for _, day := range days[i:end] {
			cells = append(cells, v.renderDay(day, colWidth, now))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	spanName := "week"
	if v.span == SpanMonth {
		spanName = v.anchor.Format("January 2006")
	}
	header := s.Title.Render("Timeline") + " " + s.Label.Render(spanName)

	footer := v.statusMsg
	if footer == "" {
		footer = "h/l day · j/k task · space move · w/M span · </> shift · T today"
	}
	return header + "\n" + strings.Join(rows, "\n") + "\n" + s.Footer.Render(footer)
}

func (v TimelineView) renderDay(day time.Time, width int, now time.Time) string {
	s := theme.Current.Styles
	t := theme.Current.Theme

	selected := sameDay(day, v.cursor)
	today := sameDay(day, now)

	name := day.Format("Mon 2")
	if today {
		name += " ●"
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Foreground)
	if today {
		headerStyle = headerStyle.Foreground(t.Primary)
	}

	lines := []string{headerStyle.Render(name)}
	tasks := v.tasksOn(day)
	for i, task := range tasks {
		title := task.Title
		if maxTitle := width - 4; len(title) > maxTitle && maxTitle > 1 {
			title = title[:maxTitle-1] + "…"
		}
		mark := lipgloss.NewStyle().Foreground(t.StatusColor(task.Status)).Render("■")
		line := mark + " " + title
		if task.ID == v.grabbedID {
			line = "✈ " + title
		}
		switch {
		case selected && i == v.taskCursor:
			line = s.TaskSelected.Render(line)
		case task.IsOverdue(now):
			line = s.TaskOverdue.Render(line)
		}
		lines = append(lines, line)
	}

	style := s.Column.Width(width)
	if selected {
		style = s.ColumnActive.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := truncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday start
	return day.AddDate(0, 0, -offset)
}

func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
