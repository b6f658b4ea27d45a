package model

import (
	"time"
)

// Position is a 2D point on a view canvas
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Module groups tasks within a project; rendered as a graph node in the
// tree view. Position seeds the automatic layout.
type Module struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Position    Position  `json:"position"`
	Tasks       []Task    `json:"tasks"`
	ProjectID   string    `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is the top-level container of modules and flowcharts
type Project struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Modules     []Module    `json:"modules"`
	Flowcharts  []Flowchart `json:"flowcharts,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TaskCounts returns total and completed task counts across all modules
func (p *Project) TaskCounts() (total, done int) {
	for i := range p.Modules {
		for j := range p.Modules[i].Tasks {
			total++
			if p.Modules[i].Tasks[j].Status == StatusDone {
				done++
			}
		}
	}
	return total, done
}

// FindModule returns the module with the given id, or nil
func (p *Project) FindModule(id string) *Module {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return &p.Modules[i]
		}
	}
	return nil
}

// FindTask returns the task with the given id from any module, or nil
func (p *Project) FindTask(id string) *Task {
	for i := range p.Modules {
		for j := range p.Modules[i].Tasks {
			if p.Modules[i].Tasks[j].ID == id {
				return &p.Modules[i].Tasks[j]
			}
		}
	}
	return nil
}

// FindFlowchart returns the flowchart with the given id, or nil
func (p *Project) FindFlowchart(id string) *Flowchart {
	for i := range p.Flowcharts {
		if p.Flowcharts[i].ID == id {
			return &p.Flowcharts[i]
		}
	}
	return nil
}
