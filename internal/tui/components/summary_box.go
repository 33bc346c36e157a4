package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow represents a key-value pair in the summary.
type SummaryRow struct {
	Key   string
	Value string
}

// SummaryBox renders a titled 2-column key/value grid in a bordered box.
// Rows with an empty value are skipped.
type SummaryBox struct {
	Title string
	Rows  []SummaryRow

	// Styles
	TitleStyle  lipgloss.Style
	KeyStyle    lipgloss.Style
	ValueStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewSummaryBox creates a new summary box.
func NewSummaryBox(title string, rows []SummaryRow, titleStyle, keyStyle, valueStyle, borderStyle lipgloss.Style) SummaryBox {
	return SummaryBox{
		Title:       title,
		Rows:        rows,
		TitleStyle:  titleStyle,
		KeyStyle:    keyStyle,
		ValueStyle:  valueStyle,
		BorderStyle: borderStyle,
	}
}

// View renders the summary box.
func (s SummaryBox) View(width int) string {
	boxWidth := width - 8
	if boxWidth < 30 {
		boxWidth = 30
	}

	var lines []string
	if s.Title != "" {
		lines = append(lines, s.TitleStyle.Render(s.Title))
	}
	for _, row := range s.Rows {
		if row.Value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s", s.KeyStyle.Render(row.Key), s.ValueStyle.Render(row.Value)))
	}

	return "  " + s.BorderStyle.Width(boxWidth).Render(strings.Join(lines, "\n"))
}
