package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nini1972/comicbook-creator/panel"
	"github.com/nini1972/comicbook-creator/sse"
)

// StreamEventMsg carries one event from the stream opened for Run.
type StreamEventMsg struct {
	Run   uint64
	Event sse.Event
}

// StreamClosedMsg reports that the stream for Run stopped producing events.
type StreamClosedMsg struct {
	Run uint64
}

// ComicRenderedMsg carries the rendered comic for the current width.
type ComicRenderedMsg struct {
	Run   uint64
	Width int
	Out   string
	Err   error
}

// waitForEvent blocks on the next stream event off the UI goroutine.
func waitForEvent(run uint64, src panel.Source) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-src.Events()
		if !ok {
			return StreamClosedMsg{Run: run}
		}
		return StreamEventMsg{Run: run, Event: ev}
	}
}
