package panel

import (
	"context"
	"errors"
)

// ErrNotGenerating is returned by Drive when no run is in flight.
var ErrNotGenerating = errors.New("no generation run in flight")

// Drive feeds events from the open stream into the panel until the run ends
// or ctx is cancelled, calling observe after every dispatched event. It is
// the blocking counterpart to the TUI's message pump and must run on the
// goroutine that owns the panel.
func (p *Panel) Drive(ctx context.Context, observe func(*Panel)) error {
	if !p.Generating() {
		return ErrNotGenerating
	}
	run := p.run
	events := p.source.Events()

	for p.Generating() && p.run == run {
		select {
		case <-ctx.Done():
			p.Unmount()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				// The source ended without a terminal event; treat it as a
				// dropped connection.
				p.handleError(errors.New("event stream closed"))
			} else {
				p.Dispatch(run, ev)
			}
			if observe != nil {
				observe(p)
			}
		}
	}
	return nil
}
