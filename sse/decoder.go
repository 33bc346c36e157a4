package sse

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"
)

// MaxLineSize bounds a single line of the stream. The finished comic arrives
// as one data line, so this is generous.
const MaxLineSize = 16 << 20

// Frame is one dispatched event as parsed off the wire.
type Frame struct {
	Name  string // event field; empty means "message"
	Data  string
	ID    string // last event ID seen so far on the stream
	Retry time.Duration
}

// Decoder reads frames from an event stream body.
type Decoder struct {
	scanner *bufio.Scanner
	lastID  string
	retry   time.Duration
	started bool
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	scanner.Split(scanLines)
	return &Decoder{scanner: scanner}
}

// Decode returns the next frame. It returns io.EOF when the stream ends; a
// frame that was not terminated by a blank line is discarded.
func (d *Decoder) Decode() (Frame, error) {
	var (
		name    string
		data    strings.Builder
		hasData bool
	)

	for d.scanner.Scan() {
		line := d.scanner.Text()
		if !d.started {
			line = strings.TrimPrefix(line, "\ufeff")
			d.started = true
		}

		if line == "" {
			if !hasData {
				name = ""
				continue
			}
			return Frame{
				Name:  name,
				Data:  strings.TrimSuffix(data.String(), "\n"),
				ID:    d.lastID,
				Retry: d.retry,
			}, nil
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			name = value
		case "data":
			data.WriteString(value)
			data.WriteByte('\n')
			hasData = true
		case "id":
			if !strings.ContainsRune(value, 0) {
				d.lastID = value
			}
		case "retry":
			if ms, err := strconv.ParseUint(value, 10, 32); err == nil {
				d.retry = time.Duration(ms) * time.Millisecond
			}
		}
	}

	if err := d.scanner.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}

// scanLines splits on LF, CRLF, or a lone CR.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// A CR at the end of the buffer may be the first half of CRLF.
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
