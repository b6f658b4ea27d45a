package store

import (
	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/model"
)

// ModuleDraft carries the caller-supplied fields for a new module
type ModuleDraft struct {
	Title       string
	Description string
	Color       string
	Position    model.Position
}

// ModulePatch is a partial update; nil fields are left untouched
type ModulePatch struct {
	Title       *string
	Description *string
	Color       *string
	Position    *model.Position
}

// CreateModule appends a new module with an empty task list under the
// target project. No-op if the project id does not resolve.
func (s *Store) CreateModule(projectID string, draft ModuleDraft) (model.Module, bool) {
	s.mu.Lock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		s.mu.Unlock()
		return model.Module{}, false
	}
	now := s.now()
	m := model.Module{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Color:       draft.Color,
		Position:    draft.Position,
		Tasks:       []model.Task{},
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Modules = append(p.Modules, m)
	s.touch(now, p, nil, nil)
	s.persistLocked()
	s.mu.Unlock()

	s.playCue(cue.EventStart)
	return cloneModule(m), true
}

// UpdateModule merges the patch into the module wherever it lives;
// module ids are unique across the whole store
func (s *Store) UpdateModule(id string, patch ModulePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, p := s.findModuleLocked(id)
	if m == nil {
		return false
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Color != nil {
		m.Color = *patch.Color
	}
	if patch.Position != nil {
		m.Position = *patch.Position
	}
	s.touch(s.now(), p, m, nil)
	s.persistLocked()
	return true
}

// DeleteModule removes the module and every task and subtask nested
// under it
func (s *Store) DeleteModule(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Projects {
		p := &s.state.Projects[i]
		for j := range p.Modules {
			if p.Modules[j].ID == id {
				p.Modules = append(p.Modules[:j], p.Modules[j+1:]...)
				s.touch(s.now(), p, nil, nil)
				s.persistLocked()
				return true
			}
		}
	}
	return false
}
