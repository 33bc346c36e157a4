// Package sse implements a one-shot EventSource-style client: it opens a
// stream, reports open, message, and error events on a channel, and never
// reconnects.
package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/nini1972/comicbook-creator/internal/logging"
)

// EventType distinguishes the three callbacks an event source produces.
type EventType int

const (
	EventOpen EventType = iota
	EventMessage
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is delivered on Stream.Events.
type Event struct {
	Type EventType
	Name string // SSE event name for messages; empty means "message"
	Data string
	ID   string
	Err  error // set for EventError
}

// ErrStreamEnded is reported when the server closes the stream before the
// client does.
var ErrStreamEnded = errors.New("event stream ended by server")

// Client opens event streams.
type Client struct {
	httpClient     *http.Client
	connectTimeout time.Duration
	bufSize        int
	logger         logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Its Timeout should be zero
// since streams are long-lived.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithConnectTimeout bounds the wait for response headers. Zero disables it.
func WithConnectTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.connectTimeout = d }
}

// WithLogger sets the logger for connection lifecycle entries.
func WithLogger(l logging.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		bufSize:    32,
		logger:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream is one open event stream. Events are delivered in order on the
// channel returned by Events, which is closed once the stream is finished.
type Stream struct {
	url       string
	events    chan Event
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Open starts connecting to url and returns immediately. The first event is
// EventOpen once response headers arrive, or EventError if connecting fails.
func (c *Client) Open(ctx context.Context, url string) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		url:    url,
		events: make(chan Event, c.bufSize),
		cancel: cancel,
	}
	go s.run(ctx, c)
	return s
}

// URL returns the address the stream was opened against.
func (s *Stream) URL() string { return s.url }

// Events returns the event channel.
func (s *Stream) Events() <-chan Event { return s.events }

// Close stops the stream. It is safe to call more than once; no events are
// produced after it returns.
func (s *Stream) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}

func (s *Stream) run(ctx context.Context, c *Client) {
	defer close(s.events)
	defer s.cancel()

	resp, err := c.connect(ctx, s.url)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("event stream connect failed", map[string]any{"url": s.url, "error": err.Error()})
		}
		s.emit(ctx, Event{Type: EventError, Err: err})
		return
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("event stream opened", map[string]any{"url": s.url})
	if !s.emit(ctx, Event{Type: EventOpen}) {
		return
	}

	dec := NewDecoder(resp.Body)
	for {
		frame, err := dec.Decode()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) {
				err = ErrStreamEnded
			}
			c.logger.Debug("event stream terminated", map[string]any{"url": s.url, "error": err.Error()})
			s.emit(ctx, Event{Type: EventError, Err: err})
			return
		}
		ev := Event{Type: EventMessage, Name: frame.Name, Data: frame.Data, ID: frame.ID}
		if !s.emit(ctx, ev) {
			return
		}
	}
}

// emit delivers ev unless the stream has been closed.
func (s *Stream) emit(ctx context.Context, ev Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case s.events <- ev:
		return true
	}
}

func (c *Client) connect(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	var timer *time.Timer
	if c.connectTimeout > 0 {
		reqCtx, cancel := context.WithCancel(ctx)
		timer = time.AfterFunc(c.connectTimeout, cancel)
		req = req.WithContext(reqCtx)
	}

	resp, err := c.httpClient.Do(req)
	if timer != nil && !timer.Stop() {
		if err == nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("connecting to %s: no response within %s", url, c.connectTimeout)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("event stream %s: unexpected status %d", url, resp.StatusCode)
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "text/event-stream" {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("event stream %s: unexpected content type %q", url, resp.Header.Get("Content-Type"))
	}
	return resp, nil
}
