package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nini1972/comicbook-creator/config"
	"github.com/nini1972/comicbook-creator/endpoint"
	"github.com/nini1972/comicbook-creator/internal/logging"
	"github.com/nini1972/comicbook-creator/internal/tui"
	"github.com/nini1972/comicbook-creator/panel"
	"github.com/nini1972/comicbook-creator/render"
	"github.com/nini1972/comicbook-creator/sse"
)

var (
	topicFlag   string
	plainOutput bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a comic for a topic",
	Long: "Opens the generation panel. With a terminal attached this is an interactive view; " +
		"otherwise, or with --plain, status updates are printed line by line.",
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&topicFlag, "topic", "", "comic topic (same as the positional argument)")
	generateCmd.Flags().BoolVar(&plainOutput, "plain", false, "print status lines instead of the interactive view")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	topic := topicFlag
	if len(args) > 0 {
		topic = args[0]
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	usePlain := plainOutput || !stdoutTTY || !term.IsTerminal(int(os.Stdin.Fd()))

	logger, closeLog, err := openLogger(cfg, usePlain, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog.Close()

	theme := tui.DetectTheme(cfg.Theme)
	ep := endpoint.New(cfg.Server.Scheme, cfg.Server.Host, cfg.Server.Port, cfg.Server.Path)
	renderer, err := render.New(render.Options{
		Style:     resolveStyle(cfg.Render.Style, theme, stdoutTTY),
		BaseURL:   ep.BaseURL(),
		CacheSize: cfg.Render.CacheSize,
	})
	if err != nil {
		return err
	}

	client := sse.NewClient(
		sse.WithConnectTimeout(cfg.Server.ConnectTimeout),
		sse.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := panel.New(ctx, ep, panel.ClientOpener(client), logger)
	p.SetTopic(topic)

	if usePlain {
		width := cfg.Render.WordWrap
		if width == 0 {
			width = terminalWidth(stdoutTTY)
		}
		return runPlain(ctx, cmd.OutOrStdout(), p, renderer, width)
	}
	return runTUI(cmd.OutOrStdout(), p, renderer, theme, logger)
}

func runTUI(out io.Writer, p *panel.Panel, r *render.Renderer, theme tui.TermTheme, logger logging.Logger) error {
	m := tui.NewModel(p, r, tui.Options{
		Theme:      theme,
		Version:    appVersion,
		Logger:     logger,
		AutoSubmit: p.CanSubmit(),
	})

	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	p.Unmount()
	if err != nil {
		return fmt.Errorf("running panel: %w", err)
	}

	if p.State() == panel.Done && p.FilePath() != "" {
		fmt.Fprintf(out, "Comic saved by the server as %s\n", p.FilePath())
	}
	return nil
}

// openLogger picks the log destination: the configured log file, stderr in
// verbose plain mode, or nowhere. The TUI owns the screen so it never logs
// to a terminal stream.
func openLogger(cfg *config.Config, plain bool, stderr io.Writer) (logging.Logger, io.Closer, error) {
	if cfg.LogFile != "" {
		l, c, err := logging.OpenFile(cfg.LogFile, verbose)
		if err != nil {
			return nil, nil, err
		}
		return l, c, nil
	}
	if plain && verbose {
		return logging.NewJSONLogger(stderr, true), io.NopCloser(nil), nil
	}
	return logging.Nop(), io.NopCloser(nil), nil
}

// resolveStyle maps "auto" to a concrete glamour style so rendering never
// has to query the terminal for its background colour.
func resolveStyle(style string, theme tui.TermTheme, tty bool) string {
	if strings.ToLower(style) != config.DefaultRenderStyle {
		return style
	}
	if !tty {
		return "notty"
	}
	return theme.Name
}

func terminalWidth(tty bool) int {
	if tty {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}
