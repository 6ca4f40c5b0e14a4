package help

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/profilecard/internal/router"
	"github.com/abhisek/profilecard/internal/screen"
	"github.com/abhisek/profilecard/internal/ui/layout"
	"github.com/abhisek/profilecard/internal/ui/theme"
)

type binding struct {
	key  string
	desc string
}

type section struct {
	title    string
	bindings []binding
}

var sections = []section{
	{
		title: "Viewing",
		bindings: []binding{
			{"e / enter / space", "Edit the profile"},
			{"r", "Randomize the whole profile"},
			{"a", "Pick a new avatar"},
			{"?", "Show this help"},
			{"q / ctrl+c", "Quit"},
		},
	},
	{
		title: "Editing",
		bindings: []binding{
			{"tab / shift+tab", "Move between fields"},
			{"← / →", "Move within interests"},
			{"space", "Toggle the highlighted interest"},
			{"ctrl+s / esc", "Save and return to viewing"},
			{"ctrl+r", "Randomize the whole profile"},
			{"ctrl+a", "Pick a new avatar"},
		},
	},
}

// HelpScreen lists the key bindings.
type HelpScreen struct{}

var _ screen.Screen = (*HelpScreen)(nil)
var _ screen.KeyHintProvider = (*HelpScreen)(nil)

// New creates a HelpScreen.
func New() *HelpScreen {
	return &HelpScreen{}
}

func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

func (h *HelpScreen) Title() string {
	return "Help"
}

func (h *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "?", "enter":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HelpScreen) View(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(18)
	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.SectionHeading.Render(sec.title))
		b.WriteString("\n")
		for _, bd := range sec.bindings {
			fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(bd.key), theme.Body.Render(bd.desc))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(strings.TrimRight(b.String(), "\n")))
}
