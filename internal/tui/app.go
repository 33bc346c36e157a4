// Package tui implements the terminal view of the generation panel.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nini1972/comicbook-creator/internal/logging"
	"github.com/nini1972/comicbook-creator/internal/tui/components"
	"github.com/nini1972/comicbook-creator/panel"
	"github.com/nini1972/comicbook-creator/render"
	"github.com/nini1972/comicbook-creator/sse"
)

// progressMaxEntries caps how many status entries are drawn at once.
const progressMaxEntries = 12

var errStreamClosed = errors.New("event stream closed")

type focusArea int

const (
	focusTopic focusArea = iota
	focusComic
)

// SubmitMsg asks the model to start a run for the topic in the input.
type SubmitMsg struct{}

// Options configures a Model.
type Options struct {
	Theme   TermTheme
	Version string
	Logger  logging.Logger
	// AutoSubmit starts a run for the panel's topic as soon as the program
	// starts.
	AutoSubmit bool
}

// Model is the bubbletea model wrapping one panel.Panel. The panel is only
// touched from Update, which bubbletea runs on a single goroutine.
type Model struct {
	styles   *StyleSet
	panel    *panel.Panel
	renderer *render.Renderer
	logger   logging.Logger
	version  string
	auto     bool

	input    components.TextInput
	spinner  spinner.Model
	viewport viewport.Model
	kbd      components.KbdHint

	focus       focusArea
	finishedRun uint64
	summary     render.Summary
	rendered    bool
	renderErr   error

	width    int
	height   int
	quitting bool
}

// NewModel creates the panel view. The input starts with the panel's topic.
func NewModel(p *panel.Panel, r *render.Renderer, opts Options) Model {
	styles := NewStyleSet(opts.Theme)
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	input := components.NewTextInput(
		"Topic",
		"Enter a topic for your comic...",
		opts.Theme.Accent,
		styles.PrimaryTxt.Bold(true),
		styles.ActiveBorder,
		styles.InactiveBorder,
		styles.DimTxt,
	)
	input.SetValue(p.Topic())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.AccentTxt

	return Model{
		styles:   styles,
		panel:    p,
		renderer: r,
		logger:   logger,
		version:  opts.Version,
		auto:     opts.AutoSubmit,
		input:    input,
		spinner:  s,
		viewport: viewport.New(74, 10),
		kbd:      components.NewKbdHint(styles.KbdKey, styles.KbdDesc),
		width:    80,
		height:   24,
	}
}

// Panel returns the underlying panel.
func (m Model) Panel() *panel.Panel { return m.panel }

// Init starts the cursor and, when requested, the first run.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.input.Init()}
	if m.auto {
		cmds = append(cmds, func() tea.Msg { return SubmitMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the panel view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, m.renderComic()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SubmitMsg:
		cmd := m.submit()
		return m, cmd

	case StreamEventMsg:
		m.panel.Dispatch(msg.Run, msg.Event)
		cmd := m.afterEvent(msg.Run)
		return m, cmd

	case StreamClosedMsg:
		if msg.Run == m.panel.Run() && m.panel.Generating() {
			m.panel.Dispatch(msg.Run, sse.Event{Type: sse.EventError, Err: errStreamClosed})
		}
		cmd := m.afterEvent(msg.Run)
		return m, cmd

	case ComicRenderedMsg:
		if msg.Run != m.panel.Run() || msg.Width != m.comicWidth() {
			return m, nil
		}
		m.rendered = true
		m.renderErr = msg.Err
		if msg.Err != nil {
			m.logger.Error("rendering comic", map[string]any{"run": msg.Run, "error": msg.Err.Error()})
			md, _ := m.panel.Comic()
			m.viewport.SetContent(md)
		} else {
			m.viewport.SetContent(msg.Out)
		}
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.panel.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.panel.Unmount()
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.focus == focusTopic {
			cmd := m.submit()
			return m, cmd
		}

	case "tab":
		if _, ok := m.panel.Comic(); !ok || m.panel.Generating() {
			return m, nil
		}
		if m.focus == focusTopic {
			m.focus = focusComic
			m.input.Blur()
			return m, nil
		}
		m.focus = focusTopic
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	if m.focus == focusComic {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	if !m.panel.Generating() {
		m.panel.SetTopic(m.input.Value())
	}
	return m, cmd
}

// submit starts a run; it does nothing when the panel refuses.
func (m *Model) submit() tea.Cmd {
	if !m.panel.Generating() {
		m.panel.SetTopic(m.input.Value())
	}
	if !m.panel.Submit() {
		return nil
	}

	m.input.SetDisabled(true)
	m.focus = focusTopic
	m.summary = render.Summary{}
	m.rendered = false
	m.renderErr = nil
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	m.layout()

	return tea.Batch(waitForEvent(m.panel.Run(), m.panel.Source()), m.spinner.Tick)
}

// afterEvent keeps pumping the stream while the run is live and finalises
// the view once it ends.
func (m *Model) afterEvent(run uint64) tea.Cmd {
	if run != m.panel.Run() {
		return nil
	}
	if m.panel.Generating() {
		return waitForEvent(run, m.panel.Source())
	}
	if m.finishedRun == run {
		return nil
	}
	m.finishedRun = run
	m.input.SetDisabled(false)

	md, ok := m.panel.Comic()
	if !ok {
		m.focus = focusTopic
		m.layout()
		return m.input.Focus()
	}
	m.summary = render.Inspect(md)
	m.focus = focusComic
	m.input.Blur()
	m.layout()
	return m.renderComic()
}

func (m *Model) renderComic() tea.Cmd {
	md, ok := m.panel.Comic()
	if !ok || m.renderer == nil {
		return nil
	}
	run, width, r := m.panel.Run(), m.comicWidth(), m.renderer
	return func() tea.Msg {
		out, err := r.Render(md, width)
		return ComicRenderedMsg{Run: run, Width: width, Out: out, Err: err}
	}
}

func (m Model) comicWidth() int {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) layout() {
	m.viewport.Width = m.comicWidth()
	h := m.height - lipgloss.Height(m.topView()) - lipgloss.Height(m.hintsView()) - 2
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
}

// View renders the three conditional sections: topic form, progress log,
// and the finished comic.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	out := m.topView()
	if _, ok := m.panel.Comic(); ok {
		out += m.comicBodyView() + "\n"
	}
	out += "\n" + m.hintsView() + "\n"
	return out
}

func (m Model) topView() string {
	var b strings.Builder
	b.WriteString("\n" + RenderBanner(m.styles, m.version, m.width))
	b.WriteString(m.input.View(m.width))
	b.WriteString(m.submitLine() + "\n")

	if m.showProgress() {
		b.WriteString("\n" + m.progressView() + "\n")
	}
	if _, ok := m.panel.Comic(); ok {
		b.WriteString("\n" + m.comicHeaderView() + "\n")
	}
	return b.String()
}

func (m Model) submitLine() string {
	switch {
	case m.panel.Generating():
		return "  " + m.spinner.View() + " " + m.styles.AccentTxt.Render("Generating...")
	case m.panel.CanSubmit():
		return "  " + m.styles.Title.Render("✨ Generate Comic")
	default:
		return "  " + m.styles.DimTxt.Render("✨ Generate Comic")
	}
}

// showProgress keeps the log visible while generating and after a failed run
// so the error stays readable.
func (m Model) showProgress() bool {
	return m.panel.Generating() || m.panel.State() == panel.Failed
}

func (m Model) progressView() string {
	log := m.panel.Log()
	entries := make([]components.LogEntry, 0, len(log))
	for _, u := range log {
		entries = append(entries, components.LogEntry{Status: u.Status, Details: u.DetailsText()})
	}

	marker := ""
	switch {
	case m.panel.Generating():
		marker = m.spinner.View()
	case m.panel.State() == panel.Failed:
		marker = m.styles.ErrorTxt.Render("✗")
	}

	border := m.styles.BorderedBox
	if m.panel.State() == panel.Failed {
		border = border.BorderForeground(m.styles.Theme.Error)
	}

	return components.StatusLog{
		Title:        "Generation Progress",
		Entries:      entries,
		Marker:       marker,
		TitleStyle:   m.styles.PrimaryTxt.Bold(true),
		StatusStyle:  m.styles.EntryStatus,
		DetailsStyle: m.styles.EntryDetails,
		BulletStyle:  m.styles.DimTxt,
		BorderStyle:  border,
	}.View(m.width, progressMaxEntries)
}

func (m Model) comicHeaderView() string {
	rows := []components.SummaryRow{
		{Key: "Title", Value: m.summary.Title},
		{Key: "Panels", Value: itoaNonZero(m.summary.Panels)},
		{Key: "Tables", Value: itoaNonZero(m.summary.Tables)},
		{Key: "Words", Value: itoaNonZero(m.summary.Words)},
		{Key: "Saved as", Value: m.panel.FilePath()},
	}
	if m.renderErr != nil {
		rows = append(rows, components.SummaryRow{Key: "Render", Value: m.renderErr.Error()})
	}
	return components.NewSummaryBox(
		"Your Comic Strip",
		rows,
		m.styles.Title,
		m.styles.SummaryKey,
		m.styles.SummaryValue,
		m.styles.BorderedBox,
	).View(m.width)
}

func (m Model) comicBodyView() string {
	if !m.rendered {
		return "  " + m.styles.DimTxt.Render("Rendering comic...")
	}
	lines := strings.Split(m.viewport.View(), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func (m Model) hintsView() string {
	k := m.kbd
	switch {
	case m.panel.Generating():
		k.Bindings = components.GeneratingHints()
	case m.focus == focusComic:
		k.Bindings = components.ComicHints()
	default:
		k.Bindings = components.TopicHints(m.panel.CanSubmit())
	}
	return k.View()
}
