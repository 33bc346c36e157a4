package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nini1972/comicbook-creator/endpoint"
	"github.com/nini1972/comicbook-creator/internal/tui"
	"github.com/nini1972/comicbook-creator/panel"
	"github.com/nini1972/comicbook-creator/render"
	"github.com/nini1972/comicbook-creator/sse"
)

// resetFlags restores every package-level flag variable after a test that
// runs rootCmd.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile = "comicgen.yaml"
		envFile = ".env"
		verbose = false
		themeOverride = ""
		serverHost = ""
		serverPort = 0
		renderStyle = ""
		renderWidth = 0
		renderSummary = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
	})
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("comicgen %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestEndpointCommand_Topic(t *testing.T) {
	got := execute(t, "endpoint", "--host", "comics.example.com", "--port", "9000", "Cats & dogs")
	want := "http://comics.example.com:9000/generate-comic/?topic=Cats%20%26%20dogs\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEndpointCommand_BaseURL(t *testing.T) {
	t.Setenv("COMICGEN_HOST", "")
	t.Setenv("COMICGEN_PORT", "")
	got := execute(t, "endpoint")
	if want := "http://127.0.0.1:8002/\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "comicgen.yaml")
	content := "server:\n  host: file.example\n  port: 7000\nrender:\n  style: dark\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfgFile = path
	envFile = filepath.Join(dir, "missing.env")
	serverPort = 7100
	renderStyle = "light"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Host != "file.example" {
		t.Errorf("host: got %q, want %q", cfg.Server.Host, "file.example")
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("port: got %d, want 7100", cfg.Server.Port)
	}
	if cfg.Render.Style != "light" {
		t.Errorf("style: got %q, want light", cfg.Render.Style)
	}
}

func TestLoadConfig_InvalidOverride(t *testing.T) {
	resetFlags(t)
	cfgFile = filepath.Join(t.TempDir(), "none.yaml")
	renderStyle = "sepia"

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestRenderCommand_Summary(t *testing.T) {
	resetFlags(t)
	rootCmd.SetIn(strings.NewReader("# Moon Trip\n\n![one](/images/1.png)\n\n![two](/images/2.png)\n\nTo the moon.\n"))
	got := execute(t, "render", "-", "--summary")

	for _, want := range []string{"Title:  Moon Trip", "Panels: 2", "Image:  /images/1.png"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRenderCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic.md")
	if err := os.WriteFile(path, []byte("# Moon Trip\n\nTo the moon."), 0644); err != nil {
		t.Fatalf("writing comic: %v", err)
	}
	got := execute(t, "render", path, "--style", "notty", "--width", "60")
	if !strings.Contains(got, "To the moon.") {
		t.Errorf("expected body in output:\n%s", got)
	}
}

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		style string
		theme tui.TermTheme
		tty   bool
		want  string
	}{
		{"auto", tui.DarkTheme, true, "dark"},
		{"auto", tui.LightTheme, true, "light"},
		{"auto", tui.DarkTheme, false, "notty"},
		{"ascii", tui.DarkTheme, true, "ascii"},
		{"light", tui.DarkTheme, false, "light"},
	}
	for _, tt := range tests {
		if got := resolveStyle(tt.style, tt.theme, tt.tty); got != tt.want {
			t.Errorf("resolveStyle(%q, %s, %v): got %q, want %q", tt.style, tt.theme.Name, tt.tty, got, tt.want)
		}
	}
}

func sseServer(t *testing.T, frames ...string) endpoint.Endpoint {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher := w.(http.Flusher)
		for _, f := range frames {
			fmt.Fprintf(w, "data: %s\n\n", f)
			flusher.Flush()
		}
	}))
	t.Cleanup(srv.Close)

	host, port, _ := strings.Cut(strings.TrimPrefix(srv.URL, "http://"), ":")
	p, err := strconv.Atoi(port)
	if err != nil {
		t.Fatalf("parsing port %q: %v", port, err)
	}
	return endpoint.New("http", host, p, "/generate-comic/")
}

func newPlainPanel(t *testing.T, ep endpoint.Endpoint, topic string) (*panel.Panel, *render.Renderer) {
	t.Helper()
	r, err := render.New(render.Options{Style: "notty", BaseURL: ep.BaseURL()})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	p := panel.New(context.Background(), ep, panel.ClientOpener(sse.NewClient()), nil)
	p.SetTopic(topic)
	return p, r
}

func TestRunPlain_CompleteRun(t *testing.T) {
	ep := sseServer(t,
		`{"status": "Crew initialized", "details": "4 agents"}`,
		`{"status": "complete", "markdown": "# Flying Cat\n\nWhee, said the cat.", "file_path": "output/flying_cat.md"}`,
	)
	p, r := newPlainPanel(t, ep, "A cat who wants to fly")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var out bytes.Buffer
	if err := runPlain(ctx, &out, p, r, 60); err != nil {
		t.Fatalf("runPlain: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"• " + panel.StatusConnecting,
		"• " + panel.StatusConnected,
		"• Crew initialized\n  4 agents",
		"• " + panel.StatusComplete,
		"Whee, said the cat.",
		"Saved by the server as output/flying_cat.md",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRunPlain_ServerError(t *testing.T) {
	ep := sseServer(t, `{"status": "error", "details": "LLM quota exceeded"}`)
	p, r := newPlainPanel(t, ep, "Robots")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := runPlain(ctx, &bytes.Buffer{}, p, r, 60)
	if err == nil {
		t.Fatal("expected error for failed run")
	}
	if want := "An error occurred: LLM quota exceeded"; !strings.Contains(err.Error(), want) {
		t.Errorf("error: got %q, want it to contain %q", err, want)
	}
}

func TestRunPlain_EmptyTopic(t *testing.T) {
	p, r := newPlainPanel(t, endpoint.New("http", "localhost", 8002, "/generate-comic/"), "")
	if err := runPlain(context.Background(), &bytes.Buffer{}, p, r, 60); !errors.Is(err, errTopicRequired) {
		t.Errorf("got %v, want errTopicRequired", err)
	}
}
