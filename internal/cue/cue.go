package cue

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Event classifies the cosmetic feedback a mutation asks for
type Event string

const (
	// EventStart accompanies creation and timer starts
	EventStart Event = "start"
	// EventMove accompanies ordinary edits and board moves
	EventMove Event = "move"
	// EventComplete celebrates a task reaching the terminal status
	EventComplete Event = "complete"
)

// Player renders a cue. Implementations are best-effort; the store
// swallows and logs any returned error.
type Player interface {
	Play(Event) error
}

// Null is a Player that does nothing. Used in tests and when cues are
// disabled.
type Null struct{}

// Play implements Player
func (Null) Play(Event) error { return nil }

// Terminal plays cues with the terminal bell and, for completions,
// a desktop notification via notify-send.
type Terminal struct {
	enabled bool
	out     io.Writer
}

// NewTerminal creates the default cue player
func NewTerminal() *Terminal {
	return &Terminal{enabled: true, out: os.Stderr}
}

// SetEnabled enables or disables playback
func (t *Terminal) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// Play implements Player
func (t *Terminal) Play(e Event) error {
	if !t.enabled {
		return nil
	}
	switch e {
	case EventComplete:
		if _, err := fmt.Fprint(t.out, "\a"); err != nil {
			return err
		}
		// Celebratory burst, the desktop stand-in for confetti
		cmd := exec.Command("notify-send", "-u", "normal", "-t", "4000",
			"-a", "modula", "Task complete!", "Nice work.")
		return cmd.Run()
	case EventStart, EventMove:
		_, err := fmt.Fprint(t.out, "\a")
		return err
	default:
		return nil
	}
}
