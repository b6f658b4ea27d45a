package model

import "strings"

// Status represents a task's stage in the five-step pipeline
type Status string

const (
	StatusIcebox     Status = "icebox"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusTesting    Status = "testing"
	StatusDone       Status = "done"
)

// AllStatuses lists the pipeline stages in board order
var AllStatuses = []Status{
	StatusIcebox,
	StatusTodo,
	StatusInProgress,
	StatusTesting,
	StatusDone,
}

// Label returns the display name for a status
func (s Status) Label() string {
	switch s {
	case StatusIcebox:
		return "Ice Box"
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusTesting:
		return "Testing"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Ordinal returns the position of the status within the pipeline
func (s Status) Ordinal() int {
	for i, st := range AllStatuses {
		if st == s {
			return i
		}
	}
	return 0
}

// ParseStatus normalizes a status string to the canonical enum.
// The alternate label set (emergency/complete) used by older exports
// maps onto the same pipeline.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "icebox", "ice-box", "backlog":
		return StatusIcebox
	case "todo", "to-do", "emergency", "pending":
		return StatusTodo
	case "in-progress", "in_progress", "doing":
		return StatusInProgress
	case "testing", "review":
		return StatusTesting
	case "done", "complete", "completed":
		return StatusDone
	default:
		return StatusIcebox
	}
}

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities lists priorities from least to most pressing
var AllPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

// Weight returns a numeric weight for sorting by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}
