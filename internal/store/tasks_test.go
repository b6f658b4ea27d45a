package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/model"
)

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)
	_, m, _ := f.seed(t)

	task, ok := f.st.CreateTask(m.ID, TaskDraft{Title: "Bare"})
	require.True(t, ok)
	assert.Equal(t, model.StatusIcebox, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, m.ID, task.ModuleID)
	assert.Zero(t, task.TimeSpent)
	assert.False(t, task.TimerRunning)
	assert.Nil(t, task.TimerStartedAt)
}

func TestCreateTaskUnknownModule(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, ok := f.st.CreateTask("nope", TaskDraft{Title: "Orphan"})
	assert.False(t, ok)
}

func TestUpdateTaskMergesPatch(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	title := "Renamed"
	status := model.StatusInProgress
	due := f.clock.Now().Add(48 * time.Hour)
	require.True(t, f.st.UpdateTask(task.ID, TaskPatch{
		Title:   &title,
		Status:  &status,
		DueDate: &due,
	}))

	got, found := f.st.FindTaskByID(task.ID)
	require.True(t, found)
	assert.Equal(t, task.ID, got.ID, "patch never changes identity")
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, model.StatusInProgress, got.Status)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))

	require.True(t, f.st.UpdateTask(task.ID, TaskPatch{ClearDueDate: true}))
	got, _ = f.st.FindTaskByID(task.ID)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "Renamed", got.Title, "clearing one field leaves the rest")
}

func TestUpdateTaskTouchesAncestors(t *testing.T) {
	f := newFixture(t)
	p, m, task := f.seed(t)

	f.clock.Advance(time.Hour)
	status := model.StatusTodo
	require.True(t, f.st.UpdateTask(task.ID, TaskPatch{Status: &status}))

	gotM, _ := f.st.FindModuleByID(m.ID)
	assert.True(t, gotM.UpdatedAt.After(m.UpdatedAt))
	gotP := f.st.CurrentProject()
	require.NotNil(t, gotP)
	assert.True(t, gotP.UpdatedAt.After(p.UpdatedAt))
}

func TestTaskCueRouting(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	f.cues.events = nil
	status := model.StatusInProgress
	f.st.UpdateTask(task.ID, TaskPatch{Status: &status})
	require.Len(t, f.cues.events, 1)
	assert.Equal(t, cue.EventMove, f.cues.events[0])

	f.cues.events = nil
	done := model.StatusDone
	f.st.UpdateTask(task.ID, TaskPatch{Status: &done})
	require.Len(t, f.cues.events, 1)
	assert.Equal(t, cue.EventComplete, f.cues.events[0])

	// a miss plays nothing
	f.cues.events = nil
	f.st.UpdateTask("nope", TaskPatch{Status: &done})
	assert.Empty(t, f.cues.events)
}

func TestStartStopTimerAccumulates(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	require.True(t, f.st.StartTimer(task.ID))
	got, _ := f.st.FindTaskByID(task.ID)
	assert.True(t, got.TimerRunning)
	require.NotNil(t, got.TimerStartedAt)

	f.clock.Advance(65 * time.Second)
	require.True(t, f.st.StopTimer(task.ID))

	got, _ = f.st.FindTaskByID(task.ID)
	assert.Equal(t, 65, got.TimeSpent)
	assert.False(t, got.TimerRunning)
	assert.Nil(t, got.TimerStartedAt)

	// a second session adds on top
	f.st.StartTimer(task.ID)
	f.clock.Advance(35 * time.Second)
	f.st.StopTimer(task.ID)
	got, _ = f.st.FindTaskByID(task.ID)
	assert.Equal(t, 100, got.TimeSpent)
}

func TestStartTimerTwiceKeepsOriginalStamp(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	require.True(t, f.st.StartTimer(task.ID))
	started, _ := f.st.FindTaskByID(task.ID)

	f.clock.Advance(30 * time.Second)
	require.True(t, f.st.StartTimer(task.ID))

	got, _ := f.st.FindTaskByID(task.ID)
	require.NotNil(t, got.TimerStartedAt)
	assert.True(t, got.TimerStartedAt.Equal(*started.TimerStartedAt),
		"restart must not move the start stamp")

	f.clock.Advance(30 * time.Second)
	f.st.StopTimer(task.ID)
	got, _ = f.st.FindTaskByID(task.ID)
	assert.Equal(t, 60, got.TimeSpent)
}

func TestStopTimerWhenStoppedIsNoop(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	assert.False(t, f.st.StopTimer(task.ID))
	got, _ := f.st.FindTaskByID(task.ID)
	assert.Zero(t, got.TimeSpent)
}

func TestStartTimerCue(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	f.cues.events = nil
	f.st.StartTimer(task.ID)
	assert.Equal(t, []cue.Event{cue.EventStart}, f.cues.events)

	// re-arming a running timer stays silent
	f.cues.events = nil
	f.st.StartTimer(task.ID)
	assert.Empty(t, f.cues.events)
}

func TestExplicitTimeSpentEdit(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	spent := 3600
	require.True(t, f.st.UpdateTask(task.ID, TaskPatch{TimeSpent: &spent}))
	got, _ := f.st.FindTaskByID(task.ID)
	assert.Equal(t, 3600, got.TimeSpent)
}

func TestDeleteTaskRemovesSubtasks(t *testing.T) {
	f := newFixture(t)
	_, m, task := f.seed(t)
	f.st.CreateSubtask(task.ID, "step", false)

	require.True(t, f.st.DeleteTask(task.ID))
	_, found := f.st.FindTaskByID(task.ID)
	assert.False(t, found)

	gotM, ok := f.st.FindModuleByID(m.ID)
	require.True(t, ok)
	assert.Empty(t, gotM.Tasks)
}

func TestTimerSurvivesSnapshotRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, _, task := f.seed(t)

	f.st.StartTimer(task.ID)
	f.clock.Advance(10 * time.Second)

	// restart from the persisted snapshot, as after a crash
	restored := New(Options{
		Initial: &f.disk.last,
		Clock:   f.clock.Now,
		NewID:   seqIDs(),
	})
	got, found := restored.FindTaskByID(task.ID)
	require.True(t, found)
	assert.True(t, got.TimerRunning)

	f.clock.Advance(55 * time.Second)
	require.True(t, restored.StopTimer(task.ID))
	got, _ = restored.FindTaskByID(task.ID)
	assert.Equal(t, 65, got.TimeSpent)
}
