package store

import (
	"time"

	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/model"
)

// ProjectDraft carries the caller-supplied fields for a new project
type ProjectDraft struct {
	Title       string
	Description string
	Tags        []string
	Deadline    *time.Time
}

// ProjectPatch is a partial update; nil fields are left untouched
type ProjectPatch struct {
	Title         *string
	Description   *string
	Tags          *[]string
	Deadline      *time.Time
	ClearDeadline bool
}

// CreateProject appends a new project with an empty module and flowchart
// list and makes it the current selection
func (s *Store) CreateProject(draft ProjectDraft) model.Project {
	s.mu.Lock()
	now := s.now()
	p := model.Project{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Tags:        cloneStrings(draft.Tags),
		Deadline:    draft.Deadline,
		Modules:     []model.Module{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Projects = append(s.state.Projects, p)
	s.state.CurrentProjectID = p.ID
	s.persistLocked()
	s.mu.Unlock()

	s.playCue(cue.EventStart)
	return cloneProject(p)
}

// UpdateProject merges the patch into the matching project. No-op if
// the id is unknown.
func (s *Store) UpdateProject(id string, patch ProjectPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(id)
	if p == nil {
		return false
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tags != nil {
		p.Tags = cloneStrings(*patch.Tags)
	}
	if patch.ClearDeadline {
		p.Deadline = nil
	} else if patch.Deadline != nil {
		p.Deadline = patch.Deadline
	}
	s.touch(s.now(), p, nil, nil)
	s.persistLocked()
	return true
}

// DeleteProject removes the project; owned modules, tasks and
// flowcharts go with it. A deleted current selection is cleared.
func (s *Store) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == id {
			s.state.Projects = append(s.state.Projects[:i], s.state.Projects[i+1:]...)
			if s.state.CurrentProjectID == id {
				s.state.CurrentProjectID = ""
			}
			s.persistLocked()
			return true
		}
	}
	return false
}

// SetCurrentProject changes the selection. Passing an empty id clears
// it. Selection of an unknown id is refused.
func (s *Store) SetCurrentProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.state.CurrentProjectID = ""
		s.persistLocked()
		return true
	}
	if s.findProjectLocked(id) == nil {
		return false
	}
	s.state.CurrentProjectID = id
	s.persistLocked()
	return true
}
