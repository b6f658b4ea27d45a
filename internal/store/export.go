package store

import (
	"encoding/json"
	"fmt"

	"github.com/ladzin/modula/internal/model"
)

// ExportProject serializes the full project subtree to indented JSON.
// An unknown id yields the JSON null literal rather than an error.
func (s *Store) ExportProject(projectID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(projectID)
	if p == nil {
		return "null"
	}
	data, err := json.MarshalIndent(cloneProject(*p), "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}

// ImportProject parses an exported project and appends it under a
// freshly generated id, so an import can never collide with an
// existing project. Malformed input leaves the state untouched.
// Status values from the alternate label set are normalized.
func (s *Store) ImportProject(data string) (model.Project, error) {
	var p *model.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project: %w", err)
	}
	if p == nil || p.Title == "" {
		return model.Project{}, fmt.Errorf("parse project: missing title")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p.ID = s.newID()
	if p.Modules == nil {
		p.Modules = []model.Module{}
	}
	for i := range p.Modules {
		m := &p.Modules[i]
		m.ProjectID = p.ID
		for j := range m.Tasks {
			t := &m.Tasks[j]
			t.Status = model.ParseStatus(string(t.Status))
			t.ModuleID = m.ID
		}
	}
	for i := range p.Flowcharts {
		f := &p.Flowcharts[i]
		for j := range f.Nodes {
			for k := range f.Nodes[j].Subtasks {
				st := &f.Nodes[j].Subtasks[k]
				st.Status = model.ParseStatus(string(st.Status))
			}
		}
	}
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	s.state.Projects = append(s.state.Projects, cloneProject(*p))
	s.persistLocked()
	return cloneProject(*p), nil
}
