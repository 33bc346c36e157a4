// Package logging provides the structured logger shared by the panel, the
// stream client, and the command layer.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger defines the structured logging interface.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Debug(msg string, fields map[string]any)
}

// JSONLogger writes one JSON object per line to an io.Writer.
type JSONLogger struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// NewJSONLogger creates a JSONLogger writing to w. Debug entries are only
// emitted when verbose is true.
func NewJSONLogger(w io.Writer, verbose bool) *JSONLogger {
	return &JSONLogger{w: w, verbose: verbose}
}

func (l *JSONLogger) Info(msg string, fields map[string]any)  { l.log("info", msg, fields) }
func (l *JSONLogger) Warn(msg string, fields map[string]any)  { l.log("warn", msg, fields) }
func (l *JSONLogger) Error(msg string, fields map[string]any) { l.log("error", msg, fields) }

func (l *JSONLogger) Debug(msg string, fields map[string]any) {
	if !l.verbose {
		return
	}
	l.log("debug", msg, fields)
}

func (l *JSONLogger) log(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	entry["time"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	data, _ := json.Marshal(entry)
	data = append(data, '\n')
	l.w.Write(data) //nolint:errcheck
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewJSONLogger(io.Discard, false)
}

// OpenFile opens (or creates) path for appending and returns a logger on it
// together with the file so the caller can close it. The TUI logs here so
// entries never interleave with the rendered screen.
func OpenFile(path string, verbose bool) (*JSONLogger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return NewJSONLogger(f, verbose), f, nil
}
