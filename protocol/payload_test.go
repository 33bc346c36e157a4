package protocol

import (
	"errors"
	"testing"
)

func TestDecode_Progress(t *testing.T) {
	p, err := Decode([]byte(`{"status": "Crew initialized", "details": "4 agents / 6 tasks"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Status != "Crew initialized" {
		t.Errorf("status: got %q", p.Status)
	}
	if p.DetailsText() != "4 agents / 6 tasks" {
		t.Errorf("details: got %q", p.DetailsText())
	}
	if p.IsComplete() || p.IsError() {
		t.Error("progress payload classified as terminal")
	}
}

func TestDecode_NullDetails(t *testing.T) {
	p, err := Decode([]byte(`{"status": "Initializing crew objects", "details": null}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Details != nil {
		t.Errorf("details: got %q, want nil", *p.Details)
	}
}

func TestDecode_Complete(t *testing.T) {
	p, err := Decode([]byte(`{"status": "complete", "markdown": "# Hi", "file_path": "output/hi.md"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !p.IsComplete() {
		t.Error("expected complete")
	}
	if p.Markdown != "# Hi" {
		t.Errorf("markdown: got %q", p.Markdown)
	}
	if p.FilePath != "output/hi.md" {
		t.Errorf("file_path: got %q", p.FilePath)
	}
}

func TestDecode_Error(t *testing.T) {
	p, err := Decode([]byte(`{"status": "error", "details": "boom"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !p.IsError() || p.DetailsText() != "boom" {
		t.Errorf("got %+v", p)
	}
}

func TestDecode_ExtraFieldsAllowed(t *testing.T) {
	if _, err := Decode([]byte(`{"status": "Task Complete", "details": "x", "agent": "writer"}`)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `Task Complete`},
		{"truncated", `{"status": "Task`},
		{"array", `["complete"]`},
		{"missing status", `{"details": "x"}`},
		{"numeric status", `{"status": 3}`},
		{"numeric details", `{"status": "x", "details": 4}`},
		{"complete without markdown", `{"status": "complete"}`},
		{"error without details", `{"status": "error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("error %v does not wrap ErrMalformedPayload", err)
			}
		})
	}
}
