package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nini1972/comicbook-creator/endpoint"
	"github.com/nini1972/comicbook-creator/internal/tui"
	"github.com/nini1972/comicbook-creator/render"
)

var (
	renderWidth   int
	renderSummary bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render a comic markdown file in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "wrap width (defaults to the terminal width)")
	renderCmd.Flags().BoolVar(&renderSummary, "summary", false, "print the title, panel, table and word counts instead of the comic")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	md, err := readMarkdown(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderSummary {
		s := render.Inspect(md)
		fmt.Fprintf(out, "Title:  %s\n", s.Title)
		fmt.Fprintf(out, "Panels: %d\n", s.Panels)
		fmt.Fprintf(out, "Tables: %d\n", s.Tables)
		fmt.Fprintf(out, "Words:  %d\n", s.Words)
		for _, img := range s.Images {
			fmt.Fprintf(out, "Image:  %s\n", img)
		}
		return nil
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	ep := endpoint.New(cfg.Server.Scheme, cfg.Server.Host, cfg.Server.Port, cfg.Server.Path)
	r, err := render.New(render.Options{
		Style:     resolveStyle(cfg.Render.Style, tui.DetectTheme(cfg.Theme), tty),
		BaseURL:   ep.BaseURL(),
		CacheSize: 1,
	})
	if err != nil {
		return err
	}

	width := renderWidth
	if width == 0 {
		width = cfg.Render.WordWrap
	}
	if width == 0 {
		width = terminalWidth(tty)
	}

	rendered, err := r.Render(md, width)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

func readMarkdown(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
