package cue

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalBellOnStartAndMove(t *testing.T) {
	var buf bytes.Buffer
	p := &Terminal{enabled: true, out: &buf}

	require.NoError(t, p.Play(EventStart))
	require.NoError(t, p.Play(EventMove))
	assert.Equal(t, "\a\a", buf.String())
}

func TestTerminalDisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := &Terminal{enabled: true, out: &buf}
	p.SetEnabled(false)

	require.NoError(t, p.Play(EventStart))
	require.NoError(t, p.Play(EventComplete))
	assert.Empty(t, buf.String())
}

func TestNullPlaysNothing(t *testing.T) {
	assert.NoError(t, Null{}.Play(EventComplete))
}
