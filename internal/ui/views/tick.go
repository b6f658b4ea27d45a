package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg drives the once-a-second refresh of running timer displays.
// The tick never writes to the store; it only forces a re-render so
// elapsed time is recomputed. Views re-arm the tick only while a
// running timer is actually visible, so no stale tickers pile up.
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}
