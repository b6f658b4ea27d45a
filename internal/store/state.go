package store

import (
	"github.com/ladzin/modula/internal/model"
)

// View identifies one of the interchangeable project views
type View string

const (
	ViewTree      View = "tree"
	ViewKanban    View = "kanban"
	ViewTimeline  View = "timeline"
	ViewFlowchart View = "flowchart"
)

// State is the full persisted snapshot: every project plus the
// UI-selection fields. The current project is kept as an id and
// resolved on read, so the list entry and the selection can never
// diverge.
type State struct {
	Projects           []model.Project `json:"projects"`
	CurrentProjectID   string          `json:"current_project_id,omitempty"`
	CurrentView        View            `json:"current_view,omitempty"`
	SearchQuery        string          `json:"search_query,omitempty"`
	SelectedTags       []string        `json:"selected_tags,omitempty"`
	CurrentFlowchartID string          `json:"current_flowchart_id,omitempty"`
}

// Persister receives a snapshot after every committed mutation.
// Saves are best-effort: the store logs failures and moves on.
type Persister interface {
	Save(State) error
}

func cloneSubtasks(subs []model.Subtask) []model.Subtask {
	if subs == nil {
		return nil
	}
	out := make([]model.Subtask, len(subs))
	copy(out, subs)
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}

func cloneTask(t model.Task) model.Task {
	t.Tags = cloneStrings(t.Tags)
	t.Subtasks = cloneSubtasks(t.Subtasks)
	return t
}

func cloneTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}

func cloneModule(m model.Module) model.Module {
	m.Tasks = cloneTasks(m.Tasks)
	return m
}

func cloneFlowchart(f model.Flowchart) model.Flowchart {
	nodes := make([]model.FlowNode, len(f.Nodes))
	for i, n := range f.Nodes {
		n.Subtasks = cloneTasks(n.Subtasks)
		nodes[i] = n
	}
	f.Nodes = nodes
	edges := make([]model.FlowEdge, len(f.Edges))
	copy(edges, f.Edges)
	f.Edges = edges
	return f
}

func cloneProject(p model.Project) model.Project {
	p.Tags = cloneStrings(p.Tags)
	mods := make([]model.Module, len(p.Modules))
	for i, m := range p.Modules {
		mods[i] = cloneModule(m)
	}
	p.Modules = mods
	if p.Flowcharts != nil {
		fcs := make([]model.Flowchart, len(p.Flowcharts))
		for i, f := range p.Flowcharts {
			fcs[i] = cloneFlowchart(f)
		}
		p.Flowcharts = fcs
	}
	return p
}

func cloneState(s State) State {
	projects := make([]model.Project, len(s.Projects))
	for i, p := range s.Projects {
		projects[i] = cloneProject(p)
	}
	s.Projects = projects
	s.SelectedTags = cloneStrings(s.SelectedTags)
	return s
}
