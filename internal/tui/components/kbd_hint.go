package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut hint.
type KeyBinding struct {
	Key  string
	Desc string
}

// KbdHint renders a horizontal keyboard shortcut hint bar.
type KbdHint struct {
	Bindings  []KeyBinding
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// NewKbdHint creates a KbdHint with the given styles.
func NewKbdHint(keyStyle, descStyle lipgloss.Style) KbdHint {
	return KbdHint{
		KeyStyle:  keyStyle,
		DescStyle: descStyle,
	}
}

// View renders the keyboard hints.
func (k KbdHint) View() string {
	var parts []string
	for _, b := range k.Bindings {
		part := k.KeyStyle.Render(b.Key) + " " + k.DescStyle.Render(b.Desc)
		parts = append(parts, part)
	}
	return "  " + strings.Join(parts, "    ")
}

// TopicHints are shown while the topic input has focus.
func TopicHints(canSubmit bool) []KeyBinding {
	if !canSubmit {
		return []KeyBinding{
			{Key: "type", Desc: "enter a topic"},
			{Key: "esc", Desc: "quit"},
		}
	}
	return []KeyBinding{
		{Key: "⏎", Desc: "generate"},
		{Key: "esc", Desc: "quit"},
	}
}

// GeneratingHints are shown while a run is in flight.
func GeneratingHints() []KeyBinding {
	return []KeyBinding{
		{Key: "esc", Desc: "quit"},
	}
}

// ComicHints are shown while the finished comic has focus.
func ComicHints() []KeyBinding {
	return []KeyBinding{
		{Key: "↑↓", Desc: "scroll"},
		{Key: "pgup/pgdn", Desc: "page"},
		{Key: "tab", Desc: "new topic"},
		{Key: "esc", Desc: "quit"},
	}
}
