package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ladzin/modula/internal/layout"
	"github.com/ladzin/modula/internal/model"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui/theme"
)

// FlowchartMode represents the current input mode
type FlowchartMode int

const (
	FlowModeNormal FlowchartMode = iota
	FlowModeAddChart
	FlowModeAddNode
	FlowModeRenameNode
	FlowModeConnect
	FlowModeConfirmDelete
	FlowModeDetail
	FlowModeDetailAdd
)

// FlowchartView is a keyboard flowchart editor. Each node carries a
// mini board of subtasks; pushing them syncs full task records into
// the project's mirror module so they show up on the main kanban too.
type FlowchartView struct {
	st     *store.Store
	width  int
	height int

	project   *model.Project
	flowchart *model.Flowchart
	nodes     []model.FlowNode
	edges     []model.FlowEdge

	cursor      int
	connectFrom string
	mode        FlowchartMode
	textInput   textinput.Model
	statusMsg   string

	// mini board state while a node detail is open
	detail       []model.Task
	detailCursor int
}

// NewFlowchartView creates a new flowchart view
func NewFlowchartView(st *store.Store) FlowchartView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return FlowchartView{
		st:        st,
		textInput: ti,
	}
}

// Init initializes the flowchart view
func (v FlowchartView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v FlowchartView) SetSize(width, height int) FlowchartView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether keystrokes belong to a text input
func (v FlowchartView) IsInputMode() bool {
	switch v.mode {
	case FlowModeAddChart, FlowModeAddNode, FlowModeRenameNode, FlowModeDetailAdd:
		return true
	}
	return false
}

func (v *FlowchartView) reload() {
	v.project = v.st.CurrentProject()
	v.flowchart = nil
	v.nodes = nil
	v.edges = nil
	if v.project == nil {
		return
	}

	id := v.st.CurrentFlowchartID()
	v.flowchart = v.project.FindFlowchart(id)
	if v.flowchart == nil && len(v.project.Flowcharts) > 0 {
		v.flowchart = &v.project.Flowcharts[0]
		v.st.SetCurrentFlowchart(v.flowchart.ID)
	}
	if v.flowchart == nil {
		return
	}
	v.nodes = append(v.nodes, v.flowchart.Nodes...)
	v.edges = append(v.edges, v.flowchart.Edges...)
	if v.cursor >= len(v.nodes) {
		v.cursor = 0
	}
	if v.mode == FlowModeDetail || v.mode == FlowModeDetailAdd {
		v.reloadDetail()
	}
}

func (v *FlowchartView) reloadDetail() {
	n := v.selectedNode()
	if n == nil {
		v.detail = nil
		return
	}
	v.detail = v.st.ResolveNodeSubtasks(v.project.ID, v.flowchart.ID, n.ID)
	if v.detailCursor >= len(v.detail) {
		v.detailCursor = 0
	}
}

func (v *FlowchartView) selectedNode() *model.FlowNode {
	if v.cursor < 0 || v.cursor >= len(v.nodes) {
		return nil
	}
	return &v.nodes[v.cursor]
}

// save writes the local graph back through the whole-graph path
func (v *FlowchartView) save() {
	if v.project != nil && v.flowchart != nil {
		v.st.SetFlowchart(v.project.ID, v.flowchart.ID, v.nodes, v.edges)
	}
}

// Update handles messages
func (v FlowchartView) Update(msg tea.Msg) (FlowchartView, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case FlowModeAddChart, FlowModeAddNode, FlowModeRenameNode, FlowModeDetailAdd:
			return v.handleInputMode(msg)
		case FlowModeConnect:
			return v.handleConnectMode(msg)
		case FlowModeConfirmDelete:
			return v.handleConfirmDelete(msg)
		case FlowModeDetail:
			return v.handleDetailMode(msg)
		}
		return v.handleNormalMode(msg)
	}
	return v, nil
}

func (v FlowchartView) handleNormalMode(msg tea.KeyMsg) (FlowchartView, tea.Cmd) {
	switch msg.String() {
	case "f":
		if v.project != nil {
			v.mode = FlowModeAddChart
			v.textInput.Placeholder = "New flowchart name"
			v.textInput.SetValue("")
			v.textInput.Focus()
			return v, textinput.Blink
		}
	case "]":
		v.cycleFlowchart(1)
	case "[":
		v.cycleFlowchart(-1)
	case "n", "tab":
		if len(v.nodes) > 0 {
			v.cursor = (v.cursor + 1) % len(v.nodes)
		}
	case "N", "shift+tab":
		if len(v.nodes) > 0 {
			v.cursor = (v.cursor - 1 + len(v.nodes)) % len(v.nodes)
		}
	case "a":
		if v.flowchart != nil {
			v.mode = FlowModeAddNode
			v.textInput.Placeholder = "New node label"
			v.textInput.SetValue("")
			v.textInput.Focus()
			return v, textinput.Blink
		}
		v.statusMsg = "no flowchart; press f to create one"
	case "e":
		if n := v.selectedNode(); n != nil {
			v.mode = FlowModeRenameNode
			v.textInput.Placeholder = "Node label"
			v.textInput.SetValue(n.Label)
			v.textInput.Focus()
			return v, textinput.Blink
		}
	case "c":
		if n := v.selectedNode(); n != nil {
			v.connectFrom = n.ID
			v.mode = FlowModeConnect
			v.statusMsg = "pick the target node, enter to connect"
		}
	case "d":
		if v.selectedNode() != nil {
			v.mode = FlowModeConfirmDelete
		}
	case "up", "down", "left", "right":
		v.moveNode(msg.String())
	case "A":
		v.autoArrange()
	case "enter":
		if v.selectedNode() != nil {
			v.mode = FlowModeDetail
			v.detailCursor = 0
			v.reloadDetail()
		}
	}
	return v, nil
}

func (v *FlowchartView) cycleFlowchart(dir int) {
	if v.project == nil || len(v.project.Flowcharts) == 0 || v.flowchart == nil {
		return
	}
	charts := v.project.Flowcharts
	for i := range charts {
		if charts[i].ID == v.flowchart.ID {
			next := (i + dir + len(charts)) % len(charts)
			v.st.SetCurrentFlowchart(charts[next].ID)
			v.cursor = 0
			v.reload()
			return
		}
	}
}

// moveNode drags the selected node one step. A moved node is marked
// manual so auto-arrange leaves it where the user put it.
func (v *FlowchartView) moveNode(dir string) {
	n := v.selectedNode()
	if n == nil {
		return
	}
	switch dir {
	case "up":
		n.Position.Y -= nudgeStep
	case "down":
		n.Position.Y += nudgeStep
	case "left":
		n.Position.X -= nudgeStep
	case "right":
		n.Position.X += nudgeStep
	}
	n.Manual = true
	v.save()
}

// autoArrange recomputes positions for every node that was never
// dragged, leaving manual ones alone
func (v *FlowchartView) autoArrange() {
	if v.flowchart == nil {
		return
	}
	v.nodes = layout.Arrange(v.nodes, v.edges)
	v.save()
	v.statusMsg = "arranged"
}

func (v FlowchartView) handleInputMode(msg tea.KeyMsg) (FlowchartView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(v.textInput.Value())
		if value != "" {
			switch v.mode {
			case FlowModeAddChart:
				if v.project != nil {
					v.st.CreateFlowchart(v.project.ID, value)
					v.cursor = 0
				}
			case FlowModeAddNode:
				v.addNode(value)
			case FlowModeRenameNode:
				if n := v.selectedNode(); n != nil {
					n.Label = value
					v.save()
				}
			case FlowModeDetailAdd:
				v.addDetailTask(value)
				v.mode = FlowModeDetail
				v.textInput.Blur()
				return v, nil
			}
			v.reload()
		}
		if v.mode == FlowModeDetailAdd {
			v.mode = FlowModeDetail
		} else {
			v.mode = FlowModeNormal
		}
		v.textInput.Blur()
		return v, nil
	case "esc":
		if v.mode == FlowModeDetailAdd {
			v.mode = FlowModeDetail
		} else {
			v.mode = FlowModeNormal
		}
		v.textInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v *FlowchartView) addNode(label string) {
	pos := model.Position{X: 40, Y: 40}
	if len(v.nodes) > 0 {
		_, max := layout.Bounds(v.nodes)
		pos = model.Position{X: max.X - layout.NodeWidth/2, Y: max.Y + 40}
	}
	v.nodes = append(v.nodes, model.FlowNode{
		ID:       uuid.NewString(),
		Type:     "default",
		Label:    label,
		Position: pos,
	})
	v.cursor = len(v.nodes) - 1
	v.save()
}

func (v FlowchartView) handleConnectMode(msg tea.KeyMsg) (FlowchartView, tea.Cmd) {
	switch msg.String() {
	case "n", "tab":
		if len(v.nodes) > 0 {
			v.cursor = (v.cursor + 1) % len(v.nodes)
		}
	case "N", "shift+tab":
		if len(v.nodes) > 0 {
			v.cursor = (v.cursor - 1 + len(v.nodes)) % len(v.nodes)
		}
	case "enter":
		if n := v.selectedNode(); n != nil && n.ID != v.connectFrom {
			v.edges = append(v.edges, model.FlowEdge{
				ID:       v.connectFrom + "-" + n.ID,
				Source:   v.connectFrom,
				Target:   n.ID,
				Animated: true,
			})
			v.save()
			v.statusMsg = "connected"
		}
		v.connectFrom = ""
		v.mode = FlowModeNormal
	case "esc":
		v.connectFrom = ""
		v.mode = FlowModeNormal
	}
	return v, nil
}

func (v FlowchartView) handleConfirmDelete(msg tea.KeyMsg) (FlowchartView, tea.Cmd) {
	if msg.String() == "y" || msg.String() == "Y" {
		if n := v.selectedNode(); n != nil {
			id := n.ID
			v.nodes = append(v.nodes[:v.cursor], v.nodes[v.cursor+1:]...)
			kept := v.edges[:0]
			for _, e := range v.edges {
				if e.Source != id && e.Target != id {
					kept = append(kept, e)
				}
			}
			v.edges = kept
			if v.cursor >= len(v.nodes) {
				v.cursor = 0
			}
			v.save()
		}
	}
	v.mode = FlowModeNormal
	return v, nil
}

func (v FlowchartView) handleDetailMode(msg tea.KeyMsg) (FlowchartView, tea.Cmd) {
	n := v.selectedNode()
	if n == nil {
		v.mode = FlowModeNormal
		return v, nil
	}
	switch msg.String() {
	case "esc", "enter", "q":
		v.mode = FlowModeNormal
	case "j", "down":
		if v.detailCursor < len(v.detail)-1 {
			v.detailCursor++
		}
	case "k", "up":
		if v.detailCursor > 0 {
			v.detailCursor--
		}
	case "h", "left":
		v.shiftDetailStatus(-1)
	case "l", "right":
		v.shiftDetailStatus(1)
	case "a":
		v.mode = FlowModeDetailAdd
		v.textInput.Placeholder = "New subtask title"
		v.textInput.SetValue("")
		v.textInput.Focus()
		return v, textinput.Blink
	case "x":
		if v.detailCursor < len(v.detail) {
			v.detail = append(v.detail[:v.detailCursor], v.detail[v.detailCursor+1:]...)
			v.st.SyncNodeSubtasks(v.project.ID, v.flowchart.ID, n.ID, v.detail)
			v.reloadDetail()
		}
	case "s":
		v.st.SyncNodeSubtasks(v.project.ID, v.flowchart.ID, n.ID, v.detail)
		v.reloadDetail()
		v.statusMsg = "pushed to board"
	}
	return v, nil
}

func (v *FlowchartView) shiftDetailStatus(dir int) {
	if v.detailCursor >= len(v.detail) {
		return
	}
	n := v.selectedNode()
	t := v.detail[v.detailCursor]
	ord := t.Status.Ordinal() + dir
	all := model.AllStatuses
	if ord < 0 || ord >= len(all) {
		return
	}
	v.st.SetNodeSubtaskStatus(v.project.ID, v.flowchart.ID, n.ID, t.ID, all[ord])
	v.reloadDetail()
}

// addDetailTask appends a fresh subtask and pushes the whole list so
// it lands on the main board immediately
func (v *FlowchartView) addDetailTask(title string) {
	n := v.selectedNode()
	if n == nil {
		return
	}
	now := time.Now()
	v.detail = append(v.detail, model.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    model.StatusTodo,
		Priority:  model.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	})
	v.st.SyncNodeSubtasks(v.project.ID, v.flowchart.ID, n.ID, v.detail)
	v.reloadDetail()
}

// View renders the flowchart canvas, or the node detail board
func (v FlowchartView) View() string {
	s := theme.Current.Styles
	if v.project == nil {
		return s.Label.Render("\n  No project selected. Press P to create one.")
	}
	if v.flowchart == nil {
		return s.Label.Render("\n  No flowcharts yet. Press f to create one.")
	}
	if v.mode == FlowModeDetail || v.mode == FlowModeDetailAdd {
		return v.renderDetail()
	}

	header := s.Title.Render(v.flowchart.Name) + " " +
		s.Label.Render(fmt.Sprintf("%d nodes · %d edges", len(v.nodes), len(v.edges)))

	canvasHeight := v.height - 4
	if canvasHeight < 3 {
		canvasHeight = 3
	}
	canvas := renderCanvas(v.nodes, v.selectedID(), v.width, canvasHeight)

	var footer string
	switch v.mode {
	case FlowModeConnect:
		footer = "connect: pick target (n), enter to link, esc cancels"
	case FlowModeConfirmDelete:
		footer = "delete node and its edges? (y/n)"
	default:
		footer = v.statusMsg
		if footer == "" {
			footer = "a node · c connect · e rename · arrows move · A arrange · enter detail · f/[/] charts"
		}
	}
	return header + "\n" + canvas + s.Footer.Render(footer)
}

// renderDetail draws the node's mini board: subtasks grouped by stage
func (v FlowchartView) renderDetail() string {
	s := theme.Current.Styles
	t := theme.Current.Theme
	n := v.selectedNode()

	title := s.PanelTitle.Render(n.Label) + " " +
		s.Label.Render(fmt.Sprintf("%d subtasks", len(v.detail)))

	var lines []string
	for _, status := range model.AllStatuses {
		var group []string
		for i, task := range v.detail {
			if task.Status != status {
				continue
			}
			mark := lipgloss.NewStyle().Foreground(t.StatusColor(task.Status)).Render("■")
			line := mark + " " + task.Title
			if i == v.detailCursor {
				line = s.TaskSelected.Render(line)
			}
			group = append(group, "  "+line)
		}
		if len(group) == 0 {
			continue
		}
		lines = append(lines, s.Subtitle.Render(status.Label()))
		lines = append(lines, group...)
	}
	if len(lines) == 0 {
		lines = append(lines, s.Label.Render("  no subtasks; press a to add one"))
	}

	var footer string
	if v.mode == FlowModeDetailAdd {
		footer = "subtask title: " + v.textInput.View()
	} else {
		footer = "j/k select · h/l stage · a add · x remove · s push · esc back"
	}
	return title + "\n" + s.Panel.Render(strings.Join(lines, "\n")) + "\n" + s.Footer.Render(footer)
}

func (v FlowchartView) selectedID() string {
	if n := v.selectedNode(); n != nil {
		return n.ID
	}
	return ""
}
