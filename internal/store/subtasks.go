package store

import (
	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/model"
)

// SubtaskPatch is a partial update; nil fields are left untouched
type SubtaskPatch struct {
	Title     *string
	Completed *bool
}

// CreateSubtask appends a checklist item to the task matching taskID
func (s *Store) CreateSubtask(taskID, title string, completed bool) (model.Subtask, bool) {
	s.mu.Lock()
	t, m, p := s.findTaskLocked(taskID)
	if t == nil {
		s.mu.Unlock()
		return model.Subtask{}, false
	}
	now := s.now()
	st := model.Subtask{
		ID:        s.newID(),
		Title:     title,
		Completed: completed,
		CreatedAt: now,
	}
	t.Subtasks = append(t.Subtasks, st)
	s.touch(now, p, m, t)
	s.persistLocked()
	s.mu.Unlock()

	s.playCue(cue.EventStart)
	return st, true
}

// UpdateSubtask merges the patch into the subtask. Checking a subtask
// off fires the completion cue.
func (s *Store) UpdateSubtask(taskID, subtaskID string, patch SubtaskPatch) bool {
	s.mu.Lock()
	t, m, p := s.findTaskLocked(taskID)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	var hit *model.Subtask
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			hit = &t.Subtasks[i]
			break
		}
	}
	if hit == nil {
		s.mu.Unlock()
		return false
	}
	if patch.Title != nil {
		hit.Title = *patch.Title
	}
	completed := patch.Completed != nil && *patch.Completed && !hit.Completed
	if patch.Completed != nil {
		hit.Completed = *patch.Completed
	}
	s.touch(s.now(), p, m, t)
	s.persistLocked()
	s.mu.Unlock()

	if completed {
		s.playCue(cue.EventComplete)
	}
	return true
}

// DeleteSubtask removes the checklist item from its task
func (s *Store) DeleteSubtask(taskID, subtaskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, m, p := s.findTaskLocked(taskID)
	if t == nil {
		return false
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
			s.touch(s.now(), p, m, t)
			s.persistLocked()
			return true
		}
	}
	return false
}
