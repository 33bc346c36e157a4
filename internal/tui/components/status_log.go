package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LogEntry is one line of the status log as the view sees it.
type LogEntry struct {
	Status  string
	Details string
}

// StatusLog renders the ordered progress entries of a run. The newest entry
// carries a marker that reflects whether the run is still going.
type StatusLog struct {
	Title   string
	Entries []LogEntry
	// Marker is rendered in front of the newest entry (spinner, ✓, or ✗).
	Marker string

	TitleStyle   lipgloss.Style
	StatusStyle  lipgloss.Style
	DetailsStyle lipgloss.Style
	BulletStyle  lipgloss.Style
	BorderStyle  lipgloss.Style
}

// View renders the log inside a bordered box. When maxEntries is positive
// only the newest entries are shown.
func (l StatusLog) View(width, maxEntries int) string {
	boxWidth := width - 8
	if boxWidth < 30 {
		boxWidth = 30
	}

	entries := l.Entries
	hidden := 0
	if maxEntries > 0 && len(entries) > maxEntries {
		hidden = len(entries) - maxEntries
		entries = entries[hidden:]
	}

	var lines []string
	lines = append(lines, l.TitleStyle.Render(l.Title))
	if hidden > 0 {
		lines = append(lines, l.DetailsStyle.Render(pluralize(hidden, "earlier update")))
	}
	for i, e := range entries {
		bullet := l.BulletStyle.Render("•")
		if i == len(entries)-1 && l.Marker != "" {
			bullet = l.Marker
		}
		lines = append(lines, bullet+" "+l.StatusStyle.Render(e.Status))
		if e.Details != "" {
			details := lipgloss.NewStyle().Width(boxWidth - 6).Render(e.Details)
			for _, d := range strings.Split(details, "\n") {
				lines = append(lines, "  "+l.DetailsStyle.Render(d))
			}
		}
	}

	return "  " + l.BorderStyle.Width(boxWidth).Render(strings.Join(lines, "\n"))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
