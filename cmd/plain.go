package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nini1972/comicbook-creator/panel"
	"github.com/nini1972/comicbook-creator/render"
)

var errTopicRequired = errors.New("a topic is required: pass it as an argument or with --topic")

// runPlain drives one run without a TUI, printing every status entry as it
// is appended and the rendered comic at the end.
func runPlain(ctx context.Context, out io.Writer, p *panel.Panel, r *render.Renderer, width int) error {
	if !p.Submit() {
		return errTopicRequired
	}

	printed := 0
	printNew := func(p *panel.Panel) {
		log := p.Log()
		for ; printed < len(log); printed++ {
			writeEntry(out, log[printed])
		}
	}
	printNew(p)

	if err := p.Drive(ctx, printNew); err != nil {
		return err
	}

	switch p.State() {
	case panel.Done:
		md, _ := p.Comic()
		rendered, err := r.Render(md, width)
		if err != nil {
			// Raw markdown is still readable.
			fmt.Fprintf(out, "\n%s\n", md)
			return fmt.Errorf("rendering comic: %w", err)
		}
		fmt.Fprintf(out, "\n%s", rendered)
		if path := p.FilePath(); path != "" {
			fmt.Fprintf(out, "\nSaved by the server as %s\n", path)
		}
		return nil
	case panel.Failed:
		log := p.Log()
		last := log[len(log)-1]
		if d := last.DetailsText(); d != "" {
			return fmt.Errorf("generation failed: %s: %s", last.Status, d)
		}
		return fmt.Errorf("generation failed: %s", last.Status)
	default:
		return nil
	}
}

func writeEntry(out io.Writer, u panel.StatusUpdate) {
	fmt.Fprintf(out, "• %s\n", u.Status)
	if d := u.DetailsText(); d != "" {
		fmt.Fprintf(out, "  %s\n", d)
	}
}
