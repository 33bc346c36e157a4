package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInput is a styled single-line entry wrapping bubbles/textinput. It can
// be disabled, in which case it ignores input and renders dimmed.
type TextInput struct {
	Label    string
	input    textinput.Model
	disabled bool

	// Styles
	LabelStyle    lipgloss.Style
	FocusedBorder lipgloss.Style
	BlurredBorder lipgloss.Style
	DisabledStyle lipgloss.Style
}

// NewTextInput creates a focused text input without a length limit.
func NewTextInput(label, placeholder string, accentColor lipgloss.Color, labelStyle, focusedBorder, blurredBorder, disabledStyle lipgloss.Style) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 0
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(accentColor)

	return TextInput{
		Label:         label,
		input:         ti,
		LabelStyle:    labelStyle,
		FocusedBorder: focusedBorder,
		BlurredBorder: blurredBorder,
		DisabledStyle: disabledStyle,
	}
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Disabled or blurred inputs ignore keys.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View renders the label and the bordered input.
func (t TextInput) View(width int) string {
	out := "\n  " + t.LabelStyle.Render(t.Label) + "\n"

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.input.Width = inputWidth

	border := t.BlurredBorder
	if t.input.Focused() && !t.disabled {
		border = t.FocusedBorder
	}
	body := t.input.View()
	if t.disabled {
		body = t.DisabledStyle.Render(t.input.Value())
	}
	out += "  " + border.Width(inputWidth).Render(body) + "\n"
	return out
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.input.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.input.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.input.Focused()
}

// SetDisabled toggles the disabled state.
func (t *TextInput) SetDisabled(disabled bool) {
	t.disabled = disabled
	if disabled {
		t.input.Blur()
	}
}

// Disabled reports whether the input ignores keys.
func (t TextInput) Disabled() bool {
	return t.disabled
}

// Value returns the current input value as typed.
func (t TextInput) Value() string {
	return t.input.Value()
}

// SetValue sets the input value.
func (t *TextInput) SetValue(v string) {
	t.input.SetValue(v)
}
