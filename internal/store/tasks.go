package store

import (
	"time"

	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/model"
)

// TaskDraft carries the caller-supplied fields for a new task. Id,
// timestamps and timer accounting are store-owned.
type TaskDraft struct {
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	Tags        []string
	DueDate     *time.Time
	Assignee    string
	Notes       string
}

// TaskPatch is a partial update; nil fields are left untouched.
// TimeSpent is only settable here, as an explicit edit; timers fold
// elapsed time in through StopTimer.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *model.Status
	Priority     *model.Priority
	Tags         *[]string
	DueDate      *time.Time
	ClearDueDate bool
	Assignee     *string
	Notes        *string
	TimeSpent    *int
}

// CreateTask appends a new task to the module matching moduleID,
// scanning all projects. Timer state starts cold.
func (s *Store) CreateTask(moduleID string, draft TaskDraft) (model.Task, bool) {
	s.mu.Lock()
	m, p := s.findModuleLocked(moduleID)
	if m == nil {
		s.mu.Unlock()
		return model.Task{}, false
	}
	now := s.now()
	status := draft.Status
	if status == "" {
		status = model.StatusIcebox
	}
	priority := draft.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	t := model.Task{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      status,
		Priority:    priority,
		Tags:        cloneStrings(draft.Tags),
		Subtasks:    []model.Subtask{},
		DueDate:     draft.DueDate,
		Assignee:    draft.Assignee,
		Notes:       draft.Notes,
		ModuleID:    m.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.Tasks = append(m.Tasks, t)
	s.touch(now, p, m, nil)
	s.persistLocked()
	s.mu.Unlock()

	s.playCue(cue.EventStart)
	return cloneTask(t), true
}

// UpdateTask merges the patch into the task wherever it lives. Moving
// a task into the terminal status fires the completion cue; any other
// update fires the lighter move cue. Cues never affect the mutation.
func (s *Store) UpdateTask(id string, patch TaskPatch) bool {
	s.mu.Lock()
	t, m, p := s.findTaskLocked(id)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		t.Tags = cloneStrings(*patch.Tags)
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Assignee != nil {
		t.Assignee = *patch.Assignee
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.TimeSpent != nil {
		t.TimeSpent = *patch.TimeSpent
	}
	completed := patch.Status != nil && *patch.Status == model.StatusDone
	s.touch(s.now(), p, m, t)
	s.persistLocked()
	s.mu.Unlock()

	if completed {
		s.playCue(cue.EventComplete)
	} else {
		s.playCue(cue.EventMove)
	}
	return true
}

// DeleteTask removes the task and its subtasks from its module
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Projects {
		p := &s.state.Projects[i]
		for j := range p.Modules {
			m := &p.Modules[j]
			for k := range m.Tasks {
				if m.Tasks[k].ID == id {
					m.Tasks = append(m.Tasks[:k], m.Tasks[k+1:]...)
					s.touch(s.now(), p, m, nil)
					s.persistLocked()
					return true
				}
			}
		}
	}
	return false
}

// StartTimer arms the task's timer. Starting an already-running timer
// is a no-op: the original start stamp is kept so no elapsed time is
// lost or double-counted.
func (s *Store) StartTimer(taskID string) bool {
	s.mu.Lock()
	t, m, p := s.findTaskLocked(taskID)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	if t.TimerRunning {
		s.mu.Unlock()
		return true
	}
	now := s.now()
	t.TimerRunning = true
	t.TimerStartedAt = &now
	s.touch(now, p, m, t)
	s.persistLocked()
	s.mu.Unlock()

	s.playCue(cue.EventStart)
	return true
}

// StopTimer folds elapsed wall-clock seconds into TimeSpent and clears
// the start stamp. Acts only on a running timer.
func (s *Store) StopTimer(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, m, p := s.findTaskLocked(taskID)
	if t == nil || !t.TimerRunning || t.TimerStartedAt == nil {
		return false
	}
	now := s.now()
	t.TimeSpent += int(now.Sub(*t.TimerStartedAt).Seconds())
	t.TimerRunning = false
	t.TimerStartedAt = nil
	s.touch(now, p, m, t)
	s.persistLocked()
	return true
}
