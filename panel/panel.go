// Package panel implements the Generation Panel: the state machine that turns
// a topic into one event stream run and folds the stream's events into a
// status log and, on success, the finished comic.
//
// A Panel is not safe for concurrent use. All methods must be called from the
// goroutine that owns the UI loop; stream goroutines only feed events to that
// loop.
package panel

import (
	"context"
	"errors"

	"github.com/nini1972/comicbook-creator/endpoint"
	"github.com/nini1972/comicbook-creator/internal/logging"
	"github.com/nini1972/comicbook-creator/protocol"
	"github.com/nini1972/comicbook-creator/sse"
)

// Source is an open event stream.
type Source interface {
	Events() <-chan sse.Event
	Close() error
}

// Opener opens a stream for a URL. Open must not block on the network.
type Opener interface {
	Open(ctx context.Context, url string) Source
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) Source

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, url string) Source { return f(ctx, url) }

// ClientOpener opens streams with an sse.Client.
func ClientOpener(c *sse.Client) Opener {
	return OpenerFunc(func(ctx context.Context, url string) Source {
		return c.Open(ctx, url)
	})
}

// Panel owns the state of one generation panel.
type Panel struct {
	ctx      context.Context
	endpoint endpoint.Endpoint
	opener   Opener
	logger   logging.Logger

	topic    string
	state    State
	log      []StatusUpdate
	comic    string
	hasComic bool
	filePath string

	run    uint64
	source Source
}

// New creates an idle Panel. ctx bounds every stream the panel opens.
func New(ctx context.Context, ep endpoint.Endpoint, opener Opener, logger logging.Logger) *Panel {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Panel{
		ctx:      ctx,
		endpoint: ep,
		opener:   opener,
		logger:   logger,
	}
}

// SetTopic replaces the topic text. It never affects a run in flight.
func (p *Panel) SetTopic(topic string) { p.topic = topic }

// Topic returns the current topic text.
func (p *Panel) Topic() string { return p.topic }

// State returns the phase of the latest run.
func (p *Panel) State() State { return p.state }

// Generating reports whether a stream is open (the in-flight flag).
func (p *Panel) Generating() bool { return p.source != nil }

// CanSubmit reports whether Submit would start a run.
func (p *Panel) CanSubmit() bool { return !p.Generating() && p.topic != "" }

// Run returns the number of the latest run; zero before the first submit.
func (p *Panel) Run() uint64 { return p.run }

// Source returns the open stream, or nil when idle.
func (p *Panel) Source() Source { return p.source }

// Log returns a copy of the status log in display order.
func (p *Panel) Log() []StatusUpdate {
	out := make([]StatusUpdate, len(p.log))
	copy(out, p.log)
	return out
}

// Comic returns the finished comic markdown, if the latest run produced one.
func (p *Panel) Comic() (string, bool) { return p.comic, p.hasComic }

// FilePath returns where the backend reported saving the comic, if it did.
func (p *Panel) FilePath() string { return p.filePath }

// URL returns the stream URL for the current topic.
func (p *Panel) URL() string { return p.endpoint.URL(p.topic) }

// Submit starts a run for the current topic. It is a no-op, returning false,
// while a run is in flight or when the topic is empty.
func (p *Panel) Submit() bool {
	if !p.CanSubmit() {
		return false
	}

	p.run++
	p.state = Connecting
	p.comic, p.hasComic, p.filePath = "", false, ""
	p.log = []StatusUpdate{status(StatusConnecting)}

	url := p.URL()
	p.logger.Info("opening event stream", map[string]any{"run": p.run, "url": url})
	p.source = p.opener.Open(p.ctx, url)
	return true
}

// Dispatch applies one stream event. Events tagged with an older run, or that
// arrive after the run ended, are dropped.
func (p *Panel) Dispatch(run uint64, ev sse.Event) {
	if run != p.run || !p.Generating() {
		p.logger.Debug("dropping stale stream event", map[string]any{"run": run, "current": p.run, "type": ev.Type.String()})
		return
	}

	switch ev.Type {
	case sse.EventOpen:
		p.handleOpen()
	case sse.EventMessage:
		if ev.Name != "" && ev.Name != "message" {
			p.logger.Debug("ignoring named event", map[string]any{"run": run, "event": ev.Name})
			return
		}
		p.handleMessage(ev.Data)
	case sse.EventError:
		p.handleError(ev.Err)
	}
}

func (p *Panel) handleOpen() {
	if p.state != Connecting {
		return
	}
	p.state = Streaming
	p.log = append(p.log, status(StatusConnected))
}

func (p *Panel) handleMessage(data string) {
	payload, err := protocol.Decode([]byte(data))
	if err != nil {
		p.logger.Warn("malformed stream payload", map[string]any{"run": p.run, "error": err.Error()})
		p.finish(Failed, statusWithDetails(StatusMalformed, err.Error()))
		return
	}

	// A message implies the connection is up even if no open event was seen.
	if p.state == Connecting {
		p.state = Streaming
	}

	switch {
	case payload.IsComplete():
		p.comic, p.hasComic = payload.Markdown, true
		p.filePath = payload.FilePath
		p.logger.Info("comic received", map[string]any{"run": p.run, "bytes": len(payload.Markdown)})
		p.finish(Done, statusWithDetails(StatusComplete, StatusCompleteDetails))
	case payload.IsError():
		p.logger.Warn("generation failed", map[string]any{"run": p.run, "details": payload.DetailsText()})
		p.finish(Failed, statusWithDetails(StatusFailed, payload.DetailsText()))
	default:
		p.log = append(p.log, StatusUpdate{Status: payload.Status, Details: payload.Details})
	}
}

func (p *Panel) handleError(err error) {
	if err == nil {
		err = errors.New("unknown transport error")
	}
	p.logger.Warn("event stream failed", map[string]any{"run": p.run, "error": err.Error()})
	p.finish(Failed, statusWithDetails(StatusConnectionError, StatusConnectionHint))
}

// finish appends the terminal entry and closes the stream. The in-flight
// flag is cleared here and only here.
func (p *Panel) finish(state State, entry StatusUpdate) {
	p.log = append(p.log, entry)
	p.state = state
	p.closeSource()
}

func (p *Panel) closeSource() {
	if p.source == nil {
		return
	}
	if err := p.source.Close(); err != nil {
		p.logger.Warn("closing event stream", map[string]any{"run": p.run, "error": err.Error()})
	}
	p.source = nil
}

// Unmount releases the open stream, if any, without touching the log. The
// panel is idle afterwards.
func (p *Panel) Unmount() {
	if p.source == nil {
		return
	}
	p.logger.Info("closing event stream on exit", map[string]any{"run": p.run})
	p.closeSource()
	p.state = Idle
}
