package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/profilecard/internal/ui/theme"
)

// TextArea is a labelled multi-line field.
type TextArea struct {
	Label string
	Model textarea.Model
}

// NewTextArea creates a blurred text area holding value.
func NewTextArea(label, placeholder, value string, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	if width > 0 {
		ta.SetWidth(width)
	}
	if height > 0 {
		ta.SetHeight(height)
	}
	ta.SetValue(value)
	ta.Blur()
	return TextArea{Label: label, Model: ta}
}

// Update forwards msg to the text area. changed reports whether the value
// differs afterwards.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd, bool) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd, t.Model.Value() != before
}

// Focus gives the text area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Focused reports whether the text area has focus.
func (t TextArea) Focused() bool {
	return t.Model.Focused()
}

// SetValue replaces the text without emitting a change.
func (t *TextArea) SetValue(v string) {
	if t.Model.Value() != v {
		t.Model.SetValue(v)
	}
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// View renders the label and text area.
func (t TextArea) View() string {
	frame := theme.Blurred
	if t.Focused() {
		frame = theme.Focused
	}
	return frame.Render(theme.FieldLabel.Render(t.Label) + "\n" + t.Model.View())
}
