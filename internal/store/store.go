package store

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/model"
)

// Store is the single source of truth for all projects and the current
// UI-selection state. Mutators run to completion under the lock;
// bubbletea commands call them from their own goroutines.
//
// Mutators that look up an entity by id and find no match are silent
// no-ops. Cue playback and persistence failures never surface to the
// caller.
type Store struct {
	mu    sync.Mutex
	state State

	now       func() time.Time
	newID     func() string
	cues      cue.Player
	persister Persister
}

// Options configures a store. Zero values fall back to real clock,
// uuid ids, no cues and no persistence.
type Options struct {
	Initial   *State
	Clock     func() time.Time
	NewID     func() string
	Cues      cue.Player
	Persister Persister
}

// New creates a store from the given options
func New(opts Options) *Store {
	s := &Store{
		now:       opts.Clock,
		newID:     opts.NewID,
		cues:      opts.Cues,
		persister: opts.Persister,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	if opts.Initial != nil {
		s.state = cloneState(*opts.Initial)
	}
	if s.state.CurrentView == "" {
		s.state.CurrentView = ViewTree
	}
	return s
}

// Reset replaces the entire state. Intended for tests and import flows.
func (s *Store) Reset(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cloneState(state)
	s.persistLocked()
}

// Snapshot returns a deep copy of the full state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Projects returns a deep copy of all projects
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.state.Projects))
	for i, p := range s.state.Projects {
		out[i] = cloneProject(p)
	}
	return out
}

// CurrentProject resolves the selected project id against the project
// list. Returns nil when nothing is selected or the id is stale.
func (s *Store) CurrentProject() *model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findProjectLocked(s.state.CurrentProjectID); p != nil {
		c := cloneProject(*p)
		return &c
	}
	return nil
}

// CurrentView returns the active view
func (s *Store) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentView
}

// SearchQuery returns the active search filter
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SearchQuery
}

// SelectedTags returns the active tag filter
func (s *Store) SelectedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStrings(s.state.SelectedTags)
}

// CurrentFlowchartID returns the selected flowchart id
func (s *Store) CurrentFlowchartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentFlowchartID
}

// SetCurrentView switches the active view. Pure selection state.
func (s *Store) SetCurrentView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentView = v
	s.persistLocked()
}

// SetSearchQuery updates the search filter
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchQuery = q
	s.persistLocked()
}

// SetSelectedTags updates the tag filter
func (s *Store) SetSelectedTags(tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedTags = cloneStrings(tags)
	s.persistLocked()
}

// FindTaskByID returns a copy of the task with the given id from any
// module of any project
func (s *Store) FindTaskByID(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, _, _ := s.findTaskLocked(id); t != nil {
		return cloneTask(*t), true
	}
	return model.Task{}, false
}

// FindModuleByID returns a copy of the module with the given id
func (s *Store) FindModuleByID(id string) (model.Module, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, _ := s.findModuleLocked(id); m != nil {
		return cloneModule(*m), true
	}
	return model.Module{}, false
}

// FilteredTasks returns the current project's tasks that match the
// active search query and tag filter
func (s *Store) FilteredTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(s.state.CurrentProjectID)
	if p == nil {
		return nil
	}
	query := strings.ToLower(s.state.SearchQuery)
	var out []model.Task
	for i := range p.Modules {
		for _, t := range p.Modules[i].Tasks {
			if query != "" &&
				!strings.Contains(strings.ToLower(t.Title), query) &&
				!strings.Contains(strings.ToLower(t.Description), query) {
				continue
			}
			if !hasAllTags(&t, s.state.SelectedTags) {
				continue
			}
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// TagUniverse returns the distinct tags across the current project's tasks
func (s *Store) TagUniverse() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProjectLocked(s.state.CurrentProjectID)
	if p == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for i := range p.Modules {
		for _, t := range p.Modules[i].Tasks {
			for _, tag := range t.Tags {
				if !seen[tag] {
					seen[tag] = true
					out = append(out, tag)
				}
			}
		}
	}
	return out
}

func hasAllTags(t *model.Task, tags []string) bool {
	for _, tag := range tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

// --- internal lookups, callers hold the lock ---

func (s *Store) findProjectLocked(id string) *model.Project {
	if id == "" {
		return nil
	}
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == id {
			return &s.state.Projects[i]
		}
	}
	return nil
}

// findModuleLocked scans every project; ids are unique store-wide
func (s *Store) findModuleLocked(id string) (*model.Module, *model.Project) {
	for i := range s.state.Projects {
		p := &s.state.Projects[i]
		for j := range p.Modules {
			if p.Modules[j].ID == id {
				return &p.Modules[j], p
			}
		}
	}
	return nil, nil
}

func (s *Store) findTaskLocked(id string) (*model.Task, *model.Module, *model.Project) {
	for i := range s.state.Projects {
		p := &s.state.Projects[i]
		for j := range p.Modules {
			m := &p.Modules[j]
			for k := range m.Tasks {
				if m.Tasks[k].ID == id {
					return &m.Tasks[k], m, p
				}
			}
		}
	}
	return nil, nil, nil
}

// touch stamps UpdatedAt on an entity and its ancestors. Every mutator
// routes through this so ancestor timestamps stay consistent.
func (s *Store) touch(now time.Time, p *model.Project, m *model.Module, t *model.Task) {
	if t != nil {
		t.UpdatedAt = now
	}
	if m != nil {
		m.UpdatedAt = now
	}
	if p != nil {
		p.UpdatedAt = now
	}
}

func (s *Store) playCue(e cue.Event) {
	if s.cues == nil {
		return
	}
	if err := s.cues.Play(e); err != nil {
		log.Printf("warning: %s cue failed: %v", e, err)
	}
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(cloneState(s.state)); err != nil {
		log.Printf("warning: persist failed: %v", err)
	}
}
