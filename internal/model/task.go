package model

import (
	"fmt"
	"time"
)

// Subtask is a simple checklist item owned by a task
type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Task represents a unit of work inside a module
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	Tags           []string   `json:"tags,omitempty"`
	Subtasks       []Subtask  `json:"subtasks,omitempty"`
	TimeSpent      int        `json:"time_spent"` // Seconds, committed by StopTimer only
	TimerRunning   bool       `json:"timer_running"`
	TimerStartedAt *time.Time `json:"timer_started_at,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Assignee       string     `json:"assignee,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	ModuleID       string     `json:"module_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ElapsedSeconds returns the display value of accumulated time. While the
// timer runs, elapsed wall-clock time is added on top of the committed
// TimeSpent; the stored value itself only changes on StopTimer.
func (t *Task) ElapsedSeconds(now time.Time) int {
	if t.TimerRunning && t.TimerStartedAt != nil {
		return t.TimeSpent + int(now.Sub(*t.TimerStartedAt).Seconds())
	}
	return t.TimeSpent
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return now.After(*t.DueDate)
}

// IsDueOn reports whether the task is due on the given calendar day
func (t *Task) IsDueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Year() == day.Year() && t.DueDate.YearDay() == day.YearDay()
}

// SubtaskProgress returns completed and total subtask counts
func (t *Task) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// HasTag reports whether the task carries the given tag
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// FormatDuration renders seconds as h:mm:ss, or m:ss under an hour
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
