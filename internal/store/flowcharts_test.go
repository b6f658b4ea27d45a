package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladzin/modula/internal/model"
)

// flowFixture seeds a project with one flowchart holding one node
func flowFixture(t *testing.T) (*fixture, model.Project, model.Flowchart, string) {
	t.Helper()
	f := newFixture(t)
	p := f.st.CreateProject(ProjectDraft{Title: "Alpha"})
	fc, ok := f.st.CreateFlowchart(p.ID, "Pipeline")
	require.True(t, ok)

	nodes := []model.FlowNode{{ID: "node-1", Type: "default", Label: "Design"}}
	require.True(t, f.st.SetFlowchart(p.ID, fc.ID, nodes, nil))
	return f, p, fc, "node-1"
}

func TestCreateFlowchartBecomesCurrent(t *testing.T) {
	f := newFixture(t)
	p := f.st.CreateProject(ProjectDraft{Title: "Alpha"})

	fc, ok := f.st.CreateFlowchart(p.ID, "Pipeline")
	require.True(t, ok)
	assert.Equal(t, fc.ID, f.st.CurrentFlowchartID())
	assert.Empty(t, fc.Nodes)
}

func TestSetFlowchartReplacesGraph(t *testing.T) {
	f, p, fc, _ := flowFixture(t)

	nodes := []model.FlowNode{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
	}
	edges := []model.FlowEdge{{ID: "a-b", Source: "a", Target: "b"}}
	require.True(t, f.st.SetFlowchart(p.ID, fc.ID, nodes, edges))

	got := f.st.CurrentProject().FindFlowchart(fc.ID)
	require.NotNil(t, got)
	assert.Len(t, got.Nodes, 2)
	assert.Len(t, got.Edges, 1)
}

func TestSyncCreatesSentinelModule(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	sub := model.Task{ID: "sub-1", Title: "Sketch", Status: model.StatusTodo}
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, []model.Task{sub}))

	proj := f.st.CurrentProject()
	var sentinel *model.Module
	for i := range proj.Modules {
		if proj.Modules[i].Title == SentinelModuleTitle {
			sentinel = &proj.Modules[i]
		}
	}
	require.NotNil(t, sentinel, "sync must create the mirror module")
	require.Len(t, sentinel.Tasks, 1)

	mirrored := sentinel.Tasks[0]
	assert.Equal(t, "sub-1", mirrored.ID, "mirror keeps the subtask id")
	assert.Equal(t, sentinel.ID, mirrored.ModuleID)
	assert.True(t, mirrored.HasTag("flowchart"))
	assert.True(t, mirrored.HasTag("subtask"))
	assert.Contains(t, mirrored.Description, `From flowchart node "Design"`)
}

func TestSyncTwiceDoesNotDuplicate(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	sub := model.Task{ID: "sub-1", Title: "Sketch", Status: model.StatusTodo}
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, []model.Task{sub}))
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, []model.Task{sub}))

	proj := f.st.CurrentProject()
	total := 0
	for _, m := range proj.Modules {
		total += len(m.Tasks)
	}
	assert.Equal(t, 1, total, "re-pushing the same subtask is an upsert")

	// the node reference line is appended once, not per sync
	task, found := f.st.FindTaskByID("sub-1")
	require.True(t, found)
	assert.Equal(t, `From flowchart node "Design"`, task.Description)
}

func TestSyncRemovesDroppedSubtasks(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	subs := []model.Task{
		{ID: "sub-1", Title: "Sketch"},
		{ID: "sub-2", Title: "Review"},
	}
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, subs))
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, subs[:1]))

	_, found := f.st.FindTaskByID("sub-2")
	assert.False(t, found, "dropped subtask leaves the board too")
	_, found = f.st.FindTaskByID("sub-1")
	assert.True(t, found)
}

func TestSyncPreservesBoardPosition(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	subs := []model.Task{
		{ID: "sub-1", Title: "First"},
		{ID: "sub-2", Title: "Second"},
	}
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, subs))

	// retitle the first and push again; it keeps its slot
	subs[0].Title = "First, revised"
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, subs))

	proj := f.st.CurrentProject()
	for _, m := range proj.Modules {
		if m.Title == SentinelModuleTitle {
			require.Len(t, m.Tasks, 2)
			assert.Equal(t, "sub-1", m.Tasks[0].ID)
			assert.Equal(t, "First, revised", m.Tasks[0].Title)
		}
	}
}

func TestSetNodeSubtaskStatusReachesBothCopies(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	sub := model.Task{ID: "sub-1", Title: "Sketch", Status: model.StatusTodo}
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, []model.Task{sub}))

	require.True(t, f.st.SetNodeSubtaskStatus(p.ID, fc.ID, nodeID, "sub-1", model.StatusDone))

	// live task on the board
	task, found := f.st.FindTaskByID("sub-1")
	require.True(t, found)
	assert.Equal(t, model.StatusDone, task.Status)

	// node-local record
	node := f.st.CurrentProject().FindFlowchart(fc.ID).FindNode(nodeID)
	require.NotNil(t, node)
	require.Len(t, node.Subtasks, 1)
	assert.Equal(t, model.StatusDone, node.Subtasks[0].Status)
}

func TestResolveNodeSubtasksPrefersLiveCopy(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	sub := model.Task{ID: "sub-1", Title: "Sketch", Status: model.StatusTodo}
	require.True(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, nodeID, []model.Task{sub}))

	// edit the mirrored task on the main board
	status := model.StatusTesting
	require.True(t, f.st.UpdateTask("sub-1", TaskPatch{Status: &status}))

	resolved := f.st.ResolveNodeSubtasks(p.ID, fc.ID, nodeID)
	require.Len(t, resolved, 1)
	assert.Equal(t, model.StatusTesting, resolved[0].Status,
		"board edits win over the node cache")
}

func TestSyncUnknownTargetsRefused(t *testing.T) {
	f, p, fc, nodeID := flowFixture(t)

	sub := []model.Task{{ID: "sub-1", Title: "x"}}
	assert.False(t, f.st.SyncNodeSubtasks("nope", fc.ID, nodeID, sub))
	assert.False(t, f.st.SyncNodeSubtasks(p.ID, "nope", nodeID, sub))
	assert.False(t, f.st.SyncNodeSubtasks(p.ID, fc.ID, "nope", sub))
	assert.False(t, f.st.SetNodeSubtaskStatus(p.ID, fc.ID, nodeID, "nope", model.StatusDone))
}
