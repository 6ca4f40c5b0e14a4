package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/profilecard/internal/ui/theme"
)

// ToggleGroup is a row of on/off buttons driven by the keyboard. It does not
// own the selection: callers pass the current membership on every render and
// act on the label returned from Update.
type ToggleGroup struct {
	Label   string
	Options []string
	Cursor  int
	focused bool
}

// NewToggleGroup creates a toggle group over options.
func NewToggleGroup(label string, options []string) ToggleGroup {
	return ToggleGroup{Label: label, Options: options}
}

// SetOptions replaces the options, keeping the cursor in range.
func (g *ToggleGroup) SetOptions(options []string) {
	g.Options = options
	if g.Cursor >= len(options) {
		g.Cursor = max(len(options)-1, 0)
	}
}

// Focus gives the group keyboard focus.
func (g *ToggleGroup) Focus() { g.focused = true }

// Blur removes keyboard focus.
func (g *ToggleGroup) Blur() { g.focused = false }

// Focused reports whether the group has focus.
func (g ToggleGroup) Focused() bool { return g.focused }

// Current returns the label under the cursor.
func (g ToggleGroup) Current() string {
	if g.Cursor < 0 || g.Cursor >= len(g.Options) {
		return ""
	}
	return g.Options[g.Cursor]
}

// Update moves the cursor on left/right and returns the label to toggle
// when space or enter is pressed. toggled is empty otherwise.
func (g ToggleGroup) Update(msg tea.Msg) (group ToggleGroup, toggled string) {
	if !g.focused || len(g.Options) == 0 {
		return g, ""
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, ""
	}

	switch kmsg.String() {
	case "left", "h":
		if g.Cursor > 0 {
			g.Cursor--
		}
	case "right", "l":
		if g.Cursor < len(g.Options)-1 {
			g.Cursor++
		}
	case "home":
		g.Cursor = 0
	case "end":
		g.Cursor = len(g.Options) - 1
	case "space", "enter":
		return g, g.Current()
	}

	return g, ""
}

// View renders the options, styling each by isOn and wrapping at width.
func (g ToggleGroup) View(isOn func(string) bool, width int) string {
	buttons := make([]string, 0, len(g.Options))
	for i, opt := range g.Options {
		style := theme.ToggleOff
		mark := "○ "
		if isOn(opt) {
			style = theme.ToggleOn
			mark = "● "
		}
		if g.focused && i == g.Cursor {
			style = style.Inherit(theme.ToggleCursor)
		}
		buttons = append(buttons, style.Render(mark+opt))
	}

	frame := theme.Blurred
	if g.focused {
		frame = theme.Focused
	}
	return frame.Render(theme.FieldLabel.Render(g.Label) + "\n" + wrapRow(buttons, width))
}

// wrapRow lays items out left to right, starting a new line when the next
// item would exceed width. A width of zero disables wrapping.
func wrapRow(items []string, width int) string {
	var lines []string
	var line []string
	lineWidth := 0
	for _, it := range items {
		w := lipgloss.Width(it)
		if width > 0 && lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		if lineWidth > 0 {
			lineWidth++
		}
		line = append(line, it)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}
