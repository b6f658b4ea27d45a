package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladzin/modula/internal/model"
)

func TestExportProjectRoundTrip(t *testing.T) {
	f := newFixture(t)
	p, _, task := f.seed(t)
	f.st.CreateSubtask(task.ID, "step", true)

	data := f.st.ExportProject(p.ID)
	require.True(t, json.Valid([]byte(data)))

	imported, err := f.st.ImportProject(data)
	require.NoError(t, err)

	assert.NotEqual(t, p.ID, imported.ID, "import always mints a fresh id")
	assert.Equal(t, p.Title, imported.Title)
	require.Len(t, imported.Modules, 1)
	require.Len(t, imported.Modules[0].Tasks, 1)
	assert.Equal(t, "Build", imported.Modules[0].Tasks[0].Title)
	assert.Equal(t, imported.ID, imported.Modules[0].ProjectID,
		"ownership rewritten to the new project")

	// both the original and the copy are present
	assert.Len(t, f.st.Projects(), 2)
}

func TestExportUnknownProject(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "null", f.st.ExportProject("nope"))
}

func TestImportRejectsMalformedInput(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	before := f.st.Snapshot()

	for _, data := range []string{"", "not json", "null", "{}", `{"title":""}`} {
		_, err := f.st.ImportProject(data)
		assert.Error(t, err, "input %q", data)
	}
	assert.Equal(t, before, f.st.Snapshot(), "failed imports leave state untouched")
}

func TestImportNormalizesAlternateStatusLabels(t *testing.T) {
	f := newFixture(t)

	data := `{
		"title": "Legacy",
		"modules": [{
			"id": "m1",
			"title": "Core",
			"tasks": [
				{"id": "t1", "title": "Hotfix", "status": "emergency"},
				{"id": "t2", "title": "Shipped", "status": "complete"}
			]
		}]
	}`
	imported, err := f.st.ImportProject(data)
	require.NoError(t, err)
	require.Len(t, imported.Modules, 1)
	tasks := imported.Modules[0].Tasks
	require.Len(t, tasks, 2)
	assert.Equal(t, model.StatusTodo, tasks[0].Status)
	assert.Equal(t, model.StatusDone, tasks[1].Status)
}

func TestImportNormalizesFlowchartSubtasks(t *testing.T) {
	f := newFixture(t)

	data := `{
		"title": "Legacy",
		"flowcharts": [{
			"id": "f1",
			"name": "Pipeline",
			"nodes": [{
				"id": "n1",
				"label": "Design",
				"subtasks": [{"id": "s1", "title": "Sketch", "status": "backlog"}]
			}]
		}]
	}`
	imported, err := f.st.ImportProject(data)
	require.NoError(t, err)
	require.Len(t, imported.Flowcharts, 1)
	require.Len(t, imported.Flowcharts[0].Nodes, 1)
	subs := imported.Flowcharts[0].Nodes[0].Subtasks
	require.Len(t, subs, 1)
	assert.Equal(t, model.StatusIcebox, subs[0].Status)
}
