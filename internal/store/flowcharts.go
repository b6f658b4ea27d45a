package store

import (
	"fmt"
	"strings"

	"github.com/ladzin/modula/internal/model"
)

// SentinelModuleTitle names the synthetic module that mirrors flowchart
// node subtasks into the main task hierarchy. It is created lazily on
// first sync and looked up by this fixed title.
const SentinelModuleTitle = "Flowchart Tasks"

const sentinelModuleColor = "#64748B"

// CreateFlowchart appends an empty flowchart to the project and makes
// it the current one
func (s *Store) CreateFlowchart(projectID, name string) (model.Flowchart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		return model.Flowchart{}, false
	}
	f := model.Flowchart{
		ID:    s.newID(),
		Name:  name,
		Nodes: []model.FlowNode{},
		Edges: []model.FlowEdge{},
	}
	p.Flowcharts = append(p.Flowcharts, f)
	s.state.CurrentFlowchartID = f.ID
	s.touch(s.now(), p, nil, nil)
	s.persistLocked()
	return cloneFlowchart(f), true
}

// SetFlowchart replaces the flowchart's node and edge lists. This is
// the editor's whole-graph write path.
func (s *Store) SetFlowchart(projectID, flowchartID string, nodes []model.FlowNode, edges []model.FlowEdge) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		return false
	}
	f := p.FindFlowchart(flowchartID)
	if f == nil {
		return false
	}
	clone := cloneFlowchart(model.Flowchart{Nodes: nodes, Edges: edges})
	f.Nodes = clone.Nodes
	f.Edges = clone.Edges
	s.touch(s.now(), p, nil, nil)
	s.persistLocked()
	return true
}

// SetCurrentFlowchart changes the flowchart selection
func (s *Store) SetCurrentFlowchart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentFlowchartID = id
	s.persistLocked()
}

// SyncNodeSubtasks pushes a node's subtask list to the main board. The
// node-local list is overwritten with the pushed records, and each one
// is upserted as a full task in the project's sentinel module, keyed by
// id: an existing task is replaced in place, new ids are appended.
// Tasks whose id was dropped from the node's list are removed from the
// sentinel module. One-way push; the reverse direction happens at
// render time through ResolveNodeSubtasks.
func (s *Store) SyncNodeSubtasks(projectID, flowchartID, nodeID string, subtasks []model.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		return false
	}
	f := p.FindFlowchart(flowchartID)
	if f == nil {
		return false
	}
	node := f.FindNode(nodeID)
	if node == nil {
		return false
	}

	pushed := cloneTasks(subtasks)
	pushedIDs := make(map[string]bool, len(pushed))
	for _, st := range pushed {
		pushedIDs[st.ID] = true
	}

	// Ids present before the push but absent now were deleted on the
	// node; their mirrored tasks go too.
	var removed []string
	for _, old := range node.Subtasks {
		if !pushedIDs[old.ID] {
			removed = append(removed, old.ID)
		}
	}

	node.Subtasks = pushed

	sentinel := s.sentinelModuleLocked(p)
	for _, st := range pushed {
		s.upsertSentinelTaskLocked(sentinel, node, st)
	}
	for _, id := range removed {
		for i := range sentinel.Tasks {
			if sentinel.Tasks[i].ID == id {
				sentinel.Tasks = append(sentinel.Tasks[:i], sentinel.Tasks[i+1:]...)
				break
			}
		}
	}

	s.touch(s.now(), p, sentinel, nil)
	s.persistLocked()
	return true
}

// SetNodeSubtaskStatus moves one node subtask through the pipeline.
// The status lands in the node-local copy and, through the upsert
// path, in the live sentinel-module task, so the mini board and the
// main board cannot disagree.
func (s *Store) SetNodeSubtaskStatus(projectID, flowchartID, nodeID, subtaskID string, status model.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		return false
	}
	f := p.FindFlowchart(flowchartID)
	if f == nil {
		return false
	}
	node := f.FindNode(nodeID)
	if node == nil {
		return false
	}
	for i := range node.Subtasks {
		if node.Subtasks[i].ID == subtaskID {
			node.Subtasks[i].Status = status
			node.Subtasks[i].UpdatedAt = s.now()
			sentinel := s.sentinelModuleLocked(p)
			s.upsertSentinelTaskLocked(sentinel, node, node.Subtasks[i])
			s.touch(s.now(), p, sentinel, nil)
			s.persistLocked()
			return true
		}
	}
	return false
}

// ResolveNodeSubtasks returns the node's subtasks for rendering. The
// node-local record is only a cache: when a task with the same id
// exists anywhere in the project, the live copy wins, so edits made on
// the main board show up on the mini board.
func (s *Store) ResolveNodeSubtasks(projectID, flowchartID, nodeID string) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		return nil
	}
	f := p.FindFlowchart(flowchartID)
	if f == nil {
		return nil
	}
	node := f.FindNode(nodeID)
	if node == nil {
		return nil
	}
	out := make([]model.Task, 0, len(node.Subtasks))
	for _, st := range node.Subtasks {
		if live := p.FindTask(st.ID); live != nil {
			out = append(out, cloneTask(*live))
		} else {
			out = append(out, cloneTask(st))
		}
	}
	return out
}

// sentinelModuleLocked finds the project's sentinel module by title,
// creating it on first use
func (s *Store) sentinelModuleLocked(p *model.Project) *model.Module {
	for i := range p.Modules {
		if p.Modules[i].Title == SentinelModuleTitle {
			return &p.Modules[i]
		}
	}
	now := s.now()
	p.Modules = append(p.Modules, model.Module{
		ID:          s.newID(),
		Title:       SentinelModuleTitle,
		Description: "Tasks mirrored from flowchart nodes",
		Color:       sentinelModuleColor,
		Tasks:       []model.Task{},
		ProjectID:   p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return &p.Modules[len(p.Modules)-1]
}

// upsertSentinelTaskLocked writes one node subtask into the sentinel
// module, preserving list position for existing ids
func (s *Store) upsertSentinelTaskLocked(sentinel *model.Module, node *model.FlowNode, st model.Task) {
	now := s.now()
	t := cloneTask(st)
	t.ModuleID = sentinel.ID
	t.Description = withNodeReference(t.Description, node)
	if !t.HasTag("flowchart") {
		t.Tags = append(t.Tags, "flowchart")
	}
	if !t.HasTag("subtask") {
		t.Tags = append(t.Tags, "subtask")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	for i := range sentinel.Tasks {
		if sentinel.Tasks[i].ID == t.ID {
			t.CreatedAt = sentinel.Tasks[i].CreatedAt
			sentinel.Tasks[i] = t
			return
		}
	}
	sentinel.Tasks = append(sentinel.Tasks, t)
}

// withNodeReference appends the originating-node line once
func withNodeReference(desc string, node *model.FlowNode) string {
	label := node.Label
	if label == "" {
		label = node.ID
	}
	ref := fmt.Sprintf("From flowchart node %q", label)
	if strings.Contains(desc, ref) {
		return desc
	}
	if desc == "" {
		return ref
	}
	return desc + "\n" + ref
}
