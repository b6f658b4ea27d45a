package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"icebox":      StatusIcebox,
		"backlog":     StatusIcebox,
		"todo":        StatusTodo,
		"TODO":        StatusTodo,
		" pending ":   StatusTodo,
		"emergency":   StatusTodo,
		"in-progress": StatusInProgress,
		"in_progress": StatusInProgress,
		"testing":     StatusTesting,
		"review":      StatusTesting,
		"done":        StatusDone,
		"complete":    StatusDone,
		"completed":   StatusDone,
		"":            StatusIcebox,
		"gibberish":   StatusIcebox,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseStatus(in), "input %q", in)
	}
}

func TestStatusOrdinalMatchesBoardOrder(t *testing.T) {
	for i, s := range AllStatuses {
		assert.Equal(t, i, s.Ordinal())
	}
	assert.Equal(t, 0, Status("unknown").Ordinal())
}

func TestPriorityWeightOrdering(t *testing.T) {
	assert.Less(t, PriorityLow.Weight(), PriorityMedium.Weight())
	assert.Less(t, PriorityMedium.Weight(), PriorityHigh.Weight())
	assert.Less(t, PriorityHigh.Weight(), PriorityUrgent.Weight())
	assert.Equal(t, PriorityMedium.Weight(), Priority("").Weight())
}
