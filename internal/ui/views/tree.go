package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ladzin/modula/internal/layout"
	"github.com/ladzin/modula/internal/model"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui/theme"
)

// TreeMode represents the current input mode
type TreeMode int

const (
	TreeModeNormal TreeMode = iota
	TreeModeAddModule
	TreeModeAddTask
	TreeModeConfirmDelete
)

// nudgeStep is how far one arrow keypress moves a node in layout space
const nudgeStep = 40

// TreeView renders the project → module → task hierarchy as a
// positioned graph. Automatic layout places everything the user has
// not dragged; nudging a node with the arrow keys pins it in place.
type TreeView struct {
	st     *store.Store
	width  int
	height int

	project *model.Project
	nodes   []model.FlowNode
	edges   []model.FlowEdge

	// manual pins survive reloads until the layout is reset
	pins map[string]model.Position

	cursor    int
	mode      TreeMode
	textInput textinput.Model
	statusMsg string
}

// NewTreeView creates a new tree view
func NewTreeView(st *store.Store) TreeView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return TreeView{
		st:        st,
		textInput: ti,
		pins:      make(map[string]model.Position),
	}
}

// Init initializes the tree view
func (v TreeView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v TreeView) SetSize(width, height int) TreeView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether keystrokes belong to a text input
func (v TreeView) IsInputMode() bool {
	return v.mode == TreeModeAddModule || v.mode == TreeModeAddTask
}

// reload rebuilds the node/edge set from the hierarchy and re-runs
// automatic layout. Pinned nodes keep their dropped position verbatim,
// however often this runs.
func (v *TreeView) reload() {
	v.project = v.st.CurrentProject()
	v.nodes = nil
	v.edges = nil
	if v.project == nil {
		return
	}

	p := v.project
	v.nodes = append(v.nodes, model.FlowNode{
		ID:    p.ID,
		Type:  "project",
		Label: p.Title,
	})
	for _, m := range p.Modules {
		v.nodes = append(v.nodes, model.FlowNode{
			ID:       m.ID,
			Type:     "module",
			Label:    m.Title,
			Position: m.Position,
		})
		v.edges = append(v.edges, model.FlowEdge{
			ID:     p.ID + "-" + m.ID,
			Source: p.ID,
			Target: m.ID,
		})
		for _, t := range m.Tasks {
			v.nodes = append(v.nodes, model.FlowNode{
				ID:    t.ID,
				Type:  "task",
				Label: t.Title,
			})
			v.edges = append(v.edges, model.FlowEdge{
				ID:       m.ID + "-" + t.ID,
				Source:   m.ID,
				Target:   t.ID,
				Animated: t.Status == model.StatusInProgress,
			})
		}
	}

	for i := range v.nodes {
		if pos, ok := v.pins[v.nodes[i].ID]; ok {
			v.nodes[i].Position = pos
			v.nodes[i].Manual = true
		}
	}
	v.nodes = layout.Arrange(v.nodes, v.edges)

	if v.cursor >= len(v.nodes) {
		v.cursor = 0
	}
}

func (v *TreeView) selectedNode() *model.FlowNode {
	if v.cursor < 0 || v.cursor >= len(v.nodes) {
		return nil
	}
	return &v.nodes[v.cursor]
}

// Update handles messages
func (v TreeView) Update(msg tea.Msg) (TreeView, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case TreeModeAddModule, TreeModeAddTask:
			return v.handleInputMode(msg)
		case TreeModeConfirmDelete:
			return v.handleConfirmDelete(msg)
		}
		return v.handleNormalMode(msg)
	}
	return v, nil
}

func (v TreeView) handleNormalMode(msg tea.KeyMsg) (TreeView, tea.Cmd) {
	switch msg.String() {
	case "n", "tab":
		if len(v.nodes) > 0 {
			v.cursor = (v.cursor + 1) % len(v.nodes)
		}
	case "N", "shift+tab":
		if len(v.nodes) > 0 {
			v.cursor = (v.cursor - 1 + len(v.nodes)) % len(v.nodes)
		}
	case "up", "down", "left", "right":
		v.nudge(msg.String())
	case "m":
		if v.project != nil {
			v.mode = TreeModeAddModule
			v.textInput.Placeholder = "New module title"
			v.textInput.SetValue("")
			v.textInput.Focus()
			return v, textinput.Blink
		}
	case "a":
		if n := v.selectedNode(); n != nil && n.Type == "module" {
			v.mode = TreeModeAddTask
			v.textInput.Placeholder = "New task title"
			v.textInput.SetValue("")
			v.textInput.Focus()
			return v, textinput.Blink
		}
		v.statusMsg = "select a module node first"
	case "d":
		if n := v.selectedNode(); n != nil && n.Type != "project" {
			v.mode = TreeModeConfirmDelete
		}
	case "R":
		// Reset layout: clear all pins, next Arrange starts from scratch
		v.pins = make(map[string]model.Position)
		v.nodes = layout.Reset(v.nodes)
		v.reload()
		v.statusMsg = "layout reset"
	case "r":
		v.reload()
	}
	return v, nil
}

// nudge moves the selected node one step and pins it, the keyboard
// equivalent of a drag-end
func (v *TreeView) nudge(dir string) {
	n := v.selectedNode()
	if n == nil || n.Type == "project" {
		return
	}
	pos := n.Position
	switch dir {
	case "up":
		pos.Y -= nudgeStep
	case "down":
		pos.Y += nudgeStep
	case "left":
		pos.X -= nudgeStep
	case "right":
		pos.X += nudgeStep
	}
	v.pins[n.ID] = pos
	v.nodes = layout.Pin(v.nodes, n.ID, pos)
	if n.Type == "module" {
		// Module positions persist as the layout seed
		v.st.UpdateModule(n.ID, store.ModulePatch{Position: &pos})
	}
}

func (v TreeView) handleInputMode(msg tea.KeyMsg) (TreeView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" && v.project != nil {
			switch v.mode {
			case TreeModeAddModule:
				v.st.CreateModule(v.project.ID, store.ModuleDraft{
					Title: title,
					Color: "#00C853",
				})
			case TreeModeAddTask:
				if n := v.selectedNode(); n != nil {
					v.st.CreateTask(n.ID, store.TaskDraft{
						Title:    title,
						Status:   model.StatusIcebox,
						Priority: model.PriorityMedium,
					})
				}
			}
			v.reload()
		}
		v.mode = TreeModeNormal
		v.textInput.Blur()
		return v, nil
	case "esc":
		v.mode = TreeModeNormal
		v.textInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

func (v TreeView) handleConfirmDelete(msg tea.KeyMsg) (TreeView, tea.Cmd) {
	if msg.String() == "y" || msg.String() == "Y" {
		if n := v.selectedNode(); n != nil {
			switch n.Type {
			case "module":
				v.st.DeleteModule(n.ID)
			case "task":
				v.st.DeleteTask(n.ID)
			}
			delete(v.pins, n.ID)
			v.reload()
		}
	}
	v.mode = TreeModeNormal
	return v, nil
}

// View renders the graph canvas
func (v TreeView) View() string {
	s := theme.Current.Styles
	if v.project == nil {
		return s.Label.Render("\n  No project selected. Press P to create one.")
	}

	total, done := v.project.TaskCounts()
	header := s.Title.Render(v.project.Title) + " " +
		s.Label.Render(fmt.Sprintf("%d modules · %d/%d tasks done", len(v.project.Modules), done, total))

	canvasHeight := v.height - 4
	if canvasHeight < 3 {
		canvasHeight = 3
	}
	canvas := renderCanvas(v.nodes, v.selectedID(), v.width, canvasHeight)

	var footer string
	switch v.mode {
	case TreeModeAddModule:
		footer = "module title: " + v.textInput.View()
	case TreeModeAddTask:
		footer = "task title: " + v.textInput.View()
	case TreeModeConfirmDelete:
		footer = "delete node and everything under it? (y/n)"
	default:
		footer = v.statusMsg
		if footer == "" {
			footer = "n next · arrows nudge (pins) · m module · a task · d delete · R reset layout"
		}
	}
	return header + "\n" + canvas + s.Footer.Render(footer)
}

func (v TreeView) selectedID() string {
	if n := v.selectedNode(); n != nil {
		return n.ID
	}
	return ""
}
