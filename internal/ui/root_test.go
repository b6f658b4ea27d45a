package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladzin/modula/internal/app"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui/views"
)

func TestRefreshReArmsTimerTick(t *testing.T) {
	st := store.New(store.Options{})
	p := st.CreateProject(store.ProjectDraft{Title: "Alpha"})
	mod, ok := st.CreateModule(p.ID, store.ModuleDraft{Title: "Core"})
	require.True(t, ok)
	task, ok := st.CreateTask(mod.ID, store.TaskDraft{Title: "Build"})
	require.True(t, ok)
	require.True(t, st.StartTimer(task.ID))

	root := NewRootModel(&app.App{Store: st})
	_, cmd := root.Update(views.RefreshMsg{})
	assert.NotNil(t, cmd, "a visible running timer needs the re-render tick")
}

func TestRefreshWithoutRunningTimerYieldsNoTick(t *testing.T) {
	st := store.New(store.Options{})
	p := st.CreateProject(store.ProjectDraft{Title: "Alpha"})
	mod, ok := st.CreateModule(p.ID, store.ModuleDraft{Title: "Core"})
	require.True(t, ok)
	_, ok = st.CreateTask(mod.ID, store.TaskDraft{Title: "Build"})
	require.True(t, ok)

	root := NewRootModel(&app.App{Store: st})
	_, cmd := root.Update(views.RefreshMsg{})
	assert.Nil(t, cmd)
}

func TestProjectCyclingLeavesTabToViews(t *testing.T) {
	st := store.New(store.Options{})
	st.CreateProject(store.ProjectDraft{Title: "Alpha"})
	beta := st.CreateProject(store.ProjectDraft{Title: "Beta"})

	root := NewRootModel(&app.App{Store: st})

	// Tab belongs to the active view's node cycling, not project switching.
	root.Update(tea.KeyMsg{Type: tea.KeyTab})
	current := st.CurrentProject()
	require.NotNil(t, current)
	assert.Equal(t, beta.ID, current.ID)

	root.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	current = st.CurrentProject()
	require.NotNil(t, current)
	assert.Equal(t, "Alpha", current.Title)
}
