package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func decodeAll(t *testing.T, input string) []Frame {
	t.Helper()
	dec := NewDecoder(strings.NewReader(input))
	var frames []Frame
	for {
		f, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return frames
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		frames = append(frames, f)
	}
}

func TestDecoder_SingleDataLine(t *testing.T) {
	frames := decodeAll(t, "data: {\"status\": \"Crew initialized\"}\n\n")
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Data != `{"status": "Crew initialized"}` {
		t.Errorf("data: got %q", frames[0].Data)
	}
	if frames[0].Name != "" {
		t.Errorf("name: got %q, want empty", frames[0].Name)
	}
}

func TestDecoder_MultiLineData(t *testing.T) {
	frames := decodeAll(t, "data: first\ndata:second\ndata\n\n")
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if want := "first\nsecond\n"; frames[0].Data != want {
		t.Errorf("data: got %q, want %q", frames[0].Data, want)
	}
}

func TestDecoder_FieldsAndComments(t *testing.T) {
	input := ": keep-alive\n" +
		"event: ping\n" +
		"id: 7\n" +
		"retry: 1500\n" +
		"data: {}\n" +
		"\n" +
		"data: next\n" +
		"\n"
	frames := decodeAll(t, input)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Name != "ping" || frames[0].ID != "7" || frames[0].Retry != 1500*time.Millisecond {
		t.Errorf("first frame: got %+v", frames[0])
	}
	if frames[1].Name != "" {
		t.Errorf("event name must reset between frames, got %q", frames[1].Name)
	}
	if frames[1].ID != "7" {
		t.Errorf("last event id must persist, got %q", frames[1].ID)
	}
}

func TestDecoder_LineEndings(t *testing.T) {
	for name, input := range map[string]string{
		"crlf": "data: a\r\n\r\ndata: b\r\n\r\n",
		"cr":   "data: a\r\rdata: b\r\r",
		"lf":   "data: a\n\ndata: b\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			frames := decodeAll(t, input)
			if len(frames) != 2 || frames[0].Data != "a" || frames[1].Data != "b" {
				t.Errorf("got %+v", frames)
			}
		})
	}
}

func TestDecoder_BOMAndBlankRuns(t *testing.T) {
	frames := decodeAll(t, "\ufeffdata: x\n\n\n\nevent: lonely\n\ndata: y\n\n")
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2: %+v", len(frames), frames)
	}
	if frames[0].Data != "x" || frames[1].Data != "y" {
		t.Errorf("got %+v", frames)
	}
	if frames[1].Name != "" {
		t.Errorf("event without data must not leak its name, got %q", frames[1].Name)
	}
}

func TestDecoder_UnterminatedFrameDiscarded(t *testing.T) {
	frames := decodeAll(t, "data: done\n\ndata: partial")
	if len(frames) != 1 || frames[0].Data != "done" {
		t.Errorf("got %+v", frames)
	}
}

func TestDecoder_LargeLine(t *testing.T) {
	md := strings.Repeat("| panel | caption |\\n", 20000)
	frames := decodeAll(t, "data: {\"status\":\"complete\",\"markdown\":\""+md+"\"}\n\n")
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if len(frames[0].Data) < 64*1024 {
		t.Errorf("expected a line beyond the default scanner size, got %d bytes", len(frames[0].Data))
	}
}
