package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedSeconds(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stopped := Task{TimeSpent: 120}
	assert.Equal(t, 120, stopped.ElapsedSeconds(base))

	started := base.Add(-65 * time.Second)
	running := Task{TimeSpent: 120, TimerRunning: true, TimerStartedAt: &started}
	assert.Equal(t, 185, running.ElapsedSeconds(base))

	// running flag without a stamp falls back to the committed value
	broken := Task{TimeSpent: 120, TimerRunning: true}
	assert.Equal(t, 120, broken.ElapsedSeconds(base))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&Task{}).IsOverdue(now), "no due date, never overdue")
	assert.True(t, (&Task{DueDate: &past}).IsOverdue(now))
	assert.False(t, (&Task{DueDate: &future}).IsOverdue(now))
	assert.False(t, (&Task{DueDate: &past, Status: StatusDone}).IsOverdue(now),
		"finished work is not overdue")
}

func TestIsDueOn(t *testing.T) {
	due := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	task := Task{DueDate: &due}

	assert.True(t, task.IsDueOn(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)))
	assert.False(t, task.IsDueOn(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)))
	assert.False(t, (&Task{}).IsDueOn(due))
}

func TestSubtaskProgress(t *testing.T) {
	task := Task{Subtasks: []Subtask{
		{Title: "a", Completed: true},
		{Title: "b"},
		{Title: "c", Completed: true},
	}}
	done, total := task.SubtaskProgress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "1:05", FormatDuration(65))
	assert.Equal(t, "59:59", FormatDuration(3599))
	assert.Equal(t, "1:00:00", FormatDuration(3600))
	assert.Equal(t, "2:05:09", FormatDuration(7509))
}
