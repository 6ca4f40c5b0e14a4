package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/profilecard/internal/ui/theme"
)

// TextInput is a labelled single-line field.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates a blurred input holding value.
func NewTextInput(label, placeholder, value string, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Prompt = ""
	if width > 0 {
		ti.SetWidth(width)
	}
	return TextInput{Label: label, Model: ti}
}

// Update forwards msg to the input. changed reports whether the value
// differs afterwards.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd, bool) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd, t.Model.Value() != before
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// SetValue replaces the text without emitting a change.
func (t *TextInput) SetValue(v string) {
	if t.Model.Value() != v {
		t.Model.SetValue(v)
	}
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// View renders the label and input.
func (t TextInput) View() string {
	frame := theme.Blurred
	if t.Focused() {
		frame = theme.Focused
	}
	return frame.Render(theme.FieldLabel.Render(t.Label) + "\n" + t.Model.View())
}
