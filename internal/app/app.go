package app

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/profilecard/internal/profile"
	"github.com/abhisek/profilecard/internal/router"
	"github.com/abhisek/profilecard/internal/screen"
	profilescreen "github.com/abhisek/profilecard/internal/screens/profile"
	"github.com/abhisek/profilecard/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Store   *profile.Store
	Variant profile.Config
	Logger  *log.Logger

	// Timeout bounds each generation request. Zero uses the screen default.
	Timeout time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the profile screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	card := profilescreen.New(ctx, opts.Store, opts.Variant, logger)
	card.SetTimeout(opts.Timeout)
	return AppModel{
		router: router.New(card),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturing() {
			break
		}
		switch msg.String() {
		case "q":
			if m.router.Depth() > 1 {
				return m, popScreen
			}
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, popScreen
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}

// capturing reports whether the active screen wants every key, so that
// q and esc reach its inputs instead of the global bindings.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.Capturing)
	return ok && c.CapturesInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("app: store is required")
	}
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
