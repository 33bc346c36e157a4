package render

import (
	"strings"
	"testing"
)

const sampleComic = `# The Cat Who Wanted to Fly

A short comic in four panels.

![Panel 1](/images/comic_panels/panel_1.png)

![Panel 2](/images/comic_panels/panel_2.png)

## Cast

| Character | Role |
|-----------|------|
| Whiskers  | Hero |
| Pigeon    | Mentor |

` + "```" + `
not counted as words
` + "```" + `
`

func TestInspect(t *testing.T) {
	s := Inspect(sampleComic)
	if s.Title != "The Cat Who Wanted to Fly" {
		t.Errorf("title: got %q", s.Title)
	}
	if s.Panels != 2 {
		t.Errorf("panels: got %d, want 2", s.Panels)
	}
	if s.Tables != 1 {
		t.Errorf("tables: got %d, want 1", s.Tables)
	}
	if len(s.Images) != 2 || s.Images[0] != "/images/comic_panels/panel_1.png" {
		t.Errorf("images: got %v", s.Images)
	}
	if s.Words == 0 {
		t.Error("expected a word count")
	}
}

func TestInspect_TitlePrefersLevelOne(t *testing.T) {
	s := Inspect("## Chapter\n\ntext\n\n# Real Title\n\n# Later Title\n")
	if s.Title != "Real Title" {
		t.Errorf("title: got %q, want %q", s.Title, "Real Title")
	}
}

func TestInspect_Empty(t *testing.T) {
	s := Inspect("")
	if s.Title != "" || s.Panels != 0 || s.Tables != 0 || s.Words != 0 {
		t.Errorf("got %+v", s)
	}
}

func TestRenderer_RendersTables(t *testing.T) {
	r, err := New(Options{Style: "notty"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(sampleComic, 60)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Whiskers", "Mentor", "Cat Who Wanted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_CachesPerWidth(t *testing.T) {
	r, err := New(Options{Style: "notty", CacheSize: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := r.Render("# Hi", 40)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, _ := r.Render("# Hi", 40)
	if first != second {
		t.Error("cached render differs")
	}
	if r.Cached() != 1 {
		t.Errorf("cached: got %d, want 1", r.Cached())
	}
	r.Render("# Hi", 50) //nolint:errcheck
	if r.Cached() != 2 {
		t.Errorf("cached: got %d, want 2", r.Cached())
	}
}

func TestRenderer_DefaultStyle(t *testing.T) {
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Style() != "auto" {
		t.Errorf("style: got %q, want auto", r.Style())
	}
}
