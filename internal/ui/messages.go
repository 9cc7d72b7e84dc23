package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/tracescope/internal/trace"
)

const tickInterval = 50 * time.Millisecond

type tickMsg time.Time
type frameMsg trace.Frame

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForFrame blocks until the source publishes and hands the newest
// frame to Update. It is re-armed after every frame.
func waitForFrame(slot *trace.Slot[trace.Frame]) tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-slot.C())
	}
}
