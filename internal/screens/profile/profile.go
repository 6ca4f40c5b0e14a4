// Package profile is the terminal presenter for a profile store. It renders
// snapshots and turns key presses into store intents; it never keeps a copy
// of the profile itself beyond what its widgets display.
package profile

import (
	"context"
	"fmt"
	"io"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	pf "github.com/abhisek/profilecard/internal/profile"
	"github.com/abhisek/profilecard/internal/router"
	"github.com/abhisek/profilecard/internal/screen"
	"github.com/abhisek/profilecard/internal/screens/help"
	"github.com/abhisek/profilecard/internal/ui/components"
	"github.com/abhisek/profilecard/internal/ui/layout"
	"github.com/abhisek/profilecard/internal/ui/theme"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 60 * time.Second

// focus targets in edit mode, in tab order.
const (
	focusFullName = iota
	focusNickname
	focusAbout
	focusInterests
	focusEmail
	focusPhone
	focusCount
)

// ProfileScreen implements screen.Screen for the profile card.
type ProfileScreen struct {
	ctx     context.Context
	store   *pf.Store
	variant pf.Config
	logger  *log.Logger
	timeout time.Duration

	fullName  components.TextInput
	nickname  components.TextInput
	about     components.TextArea
	email     components.TextInput
	phone     components.TextInput
	interests components.ToggleGroup
	button    *components.Button
	spinner   spinner.Model

	focus    int
	inFlight bool
	busyText string
	notice   string
	width    int
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.StatusProvider = (*ProfileScreen)(nil)
var _ screen.Capturing = (*ProfileScreen)(nil)

// New creates a ProfileScreen over store. If the store has not been
// initialized yet, Init starts the first generation.
func New(ctx context.Context, store *pf.Store, variant pf.Config, logger *log.Logger) *ProfileScreen {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &ProfileScreen{
		ctx:       ctx,
		store:     store,
		variant:   variant,
		logger:    logger,
		timeout:   DefaultTimeout,
		fullName:  components.NewTextInput(pf.FieldFullName.Label(), "Full name", "", 0),
		nickname:  components.NewTextInput(pf.FieldNickname.Label(), "Nickname", "", 0),
		about:     components.NewTextArea(pf.FieldAbout.Label(), "Tell us about yourself", "", 0, 4),
		email:     components.NewTextInput(pf.FieldEmail.Label(), "name@example.com", "", 0),
		phone:     components.NewTextInput(pf.FieldPhone.Label(), "Phone", "", 0),
		interests: components.NewToggleGroup("Interests", variant.InterestCatalog),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Busy)),
	}
	s.button = components.NewButton("Edit Profile", true, func() tea.Cmd { return s.toggleMode() })
	if !store.Snapshot().Initialized {
		s.busyText = "Generating profile"
	}
	s.resize(layout.MinWidth)
	s.syncFromStore()
	return s
}

// SetTimeout overrides the per-request generation timeout.
func (s *ProfileScreen) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	if !s.store.Snapshot().Initialized {
		return s.startGeneration("Generating profile")
	}
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

// Status reports the current mode for the header.
func (s *ProfileScreen) Status() string {
	if s.store.Mode() == pf.ModeEdit {
		return "EDITING"
	}
	return "VIEWING"
}

// CapturesInput is true in edit mode, where letters go to the inputs.
func (s *ProfileScreen) CapturesInput() bool {
	return s.store.Mode() == pf.ModeEdit
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.store.Mode() == pf.ModeEdit {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Space", Description: "Toggle"},
			{Key: "Ctrl+S", Description: "Save"},
			{Key: "Ctrl+R", Description: "Randomize"},
			{Key: "Ctrl+A", Description: "Avatar"},
		}
	}
	return []layout.KeyHint{
		{Key: "e", Description: "Edit"},
		{Key: "r", Description: "Randomize"},
		{Key: "a", Description: "Avatar"},
		{Key: "?", Description: "Help"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(msg.Width)
		return s, nil

	case recordReadyMsg:
		return s.handleRecordReady(msg)

	case avatarReadyMsg:
		return s.handleAvatarReady(msg)

	case spinner.TickMsg:
		if !s.inFlight {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if !s.store.Snapshot().Initialized {
			return s.handleUninitializedKey(msg)
		}
		s.notice = ""
		if s.store.Mode() == pf.ModeEdit {
			return s.handleEditKey(msg)
		}
		return s.handleViewKey(msg)
	}

	return s, nil
}

func (s *ProfileScreen) handleUninitializedKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r":
		return s, s.startGeneration("Generating profile")
	}
	return s, nil
}

func (s *ProfileScreen) handleViewKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "e":
		return s, s.toggleMode()
	case "r":
		return s, s.startGeneration("Randomizing profile")
	case "a":
		return s, s.startAvatar()
	case "?":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: help.New()}
		}
	}

	return s, s.button.Update(msg)
}

func (s *ProfileScreen) handleEditKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s", "esc":
		return s, s.toggleMode()
	case "ctrl+r":
		return s, s.startGeneration("Randomizing profile")
	case "ctrl+a":
		return s, s.startAvatar()
	case "tab":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	}
	return s, s.forwardToFocused(msg)
}

// forwardToFocused hands msg to the focused widget and dispatches the
// resulting edit to the store.
func (s *ProfileScreen) forwardToFocused(msg tea.Msg) tea.Cmd {
	var (
		cmd     tea.Cmd
		changed bool
		field   pf.Field
		value   string
	)

	switch s.focus {
	case focusFullName:
		s.fullName, cmd, changed = s.fullName.Update(msg)
		field, value = pf.FieldFullName, s.fullName.Value()
	case focusNickname:
		s.nickname, cmd, changed = s.nickname.Update(msg)
		field, value = pf.FieldNickname, s.nickname.Value()
	case focusAbout:
		s.about, cmd, changed = s.about.Update(msg)
		field, value = pf.FieldAbout, s.about.Value()
	case focusEmail:
		s.email, cmd, changed = s.email.Update(msg)
		field, value = pf.FieldEmail, s.email.Value()
	case focusPhone:
		s.phone, cmd, changed = s.phone.Update(msg)
		field, value = pf.FieldPhone, s.phone.Value()
	case focusInterests:
		var label string
		s.interests, label = s.interests.Update(msg)
		if label != "" {
			s.dispatch(pf.ToggleInterestIntent{Label: label})
			s.refreshInterestOptions()
		}
		return nil
	}

	if changed {
		s.dispatch(pf.SetFieldIntent{Field: field, Value: value})
	}
	return cmd
}

func (s *ProfileScreen) dispatch(in pf.Intent) {
	if err := s.store.Dispatch(s.ctx, in); err != nil {
		s.logger.Warn("intent failed", "intent", fmt.Sprintf("%T", in), "err", err)
		s.notice = err.Error()
	}
}

func (s *ProfileScreen) toggleMode() tea.Cmd {
	s.dispatch(pf.ToggleModeIntent{})
	if s.store.Mode() == pf.ModeEdit {
		s.syncFromStore()
		return s.setFocus(focusFullName)
	}
	s.blurAll()
	s.syncFromStore()
	return nil
}

func (s *ProfileScreen) setFocus(target int) tea.Cmd {
	s.blurAll()
	s.focus = target
	switch target {
	case focusFullName:
		return s.fullName.Focus()
	case focusNickname:
		return s.nickname.Focus()
	case focusAbout:
		return s.about.Focus()
	case focusInterests:
		s.interests.Focus()
	case focusEmail:
		return s.email.Focus()
	case focusPhone:
		return s.phone.Focus()
	}
	return nil
}

func (s *ProfileScreen) blurAll() {
	s.fullName.Blur()
	s.nickname.Blur()
	s.about.Blur()
	s.interests.Blur()
	s.email.Blur()
	s.phone.Blur()
}

// startGeneration requests a new record in the background. Requests made
// while another generation is running are dropped.
func (s *ProfileScreen) startGeneration(label string) tea.Cmd {
	if s.inFlight {
		s.logger.Debug("generation already in flight, ignoring request")
		return nil
	}
	s.inFlight = true
	s.busyText = label

	gen := s.store.Generator()
	ctx, timeout := s.ctx, s.timeout
	generate := func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		rec, err := gen.Generate(ctx)
		return recordReadyMsg{Record: rec, Err: err}
	}
	return tea.Batch(generate, s.spinner.Tick)
}

func (s *ProfileScreen) startAvatar() tea.Cmd {
	if s.inFlight {
		return nil
	}
	s.inFlight = true
	s.busyText = "Picking a new avatar"

	gen := s.store.Generator()
	ctx, timeout := s.ctx, s.timeout
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		url, err := gen.Avatar(ctx)
		return avatarReadyMsg{URL: url, Err: err}
	}
	return tea.Batch(fetch, s.spinner.Tick)
}

func (s *ProfileScreen) handleRecordReady(msg recordReadyMsg) (screen.Screen, tea.Cmd) {
	s.inFlight = false
	s.busyText = ""

	if msg.Err != nil {
		s.logger.Warn("profile generation failed", "err", msg.Err)
		s.notice = "Could not generate a profile: " + msg.Err.Error()
		return s, nil
	}

	first := !s.store.Snapshot().Initialized
	if err := s.store.Install(msg.Record); err != nil {
		s.logger.Warn("generated profile rejected", "err", err)
		s.notice = "Generated profile was rejected: " + err.Error()
		return s, nil
	}
	if first {
		s.logger.Info("profile initialized", "id", s.store.Snapshot().Record.ID)
	} else {
		s.logger.Info("profile randomized", "id", s.store.Snapshot().Record.ID)
	}
	s.syncFromStore()
	return s, nil
}

func (s *ProfileScreen) handleAvatarReady(msg avatarReadyMsg) (screen.Screen, tea.Cmd) {
	s.inFlight = false
	s.busyText = ""

	if msg.Err != nil {
		s.logger.Warn("avatar generation failed", "err", msg.Err)
		s.notice = "Could not pick a new avatar: " + msg.Err.Error()
		return s, nil
	}
	s.dispatch(pf.SetFieldIntent{Field: pf.FieldAvatarURL, Value: msg.URL})
	return s, nil
}

// syncFromStore copies the current record into the widgets.
func (s *ProfileScreen) syncFromStore() {
	rec := s.store.Snapshot().Record
	s.fullName.SetValue(rec.FullName)
	s.nickname.SetValue(rec.Nickname)
	s.about.SetValue(rec.About)
	s.email.SetValue(rec.Email)
	s.phone.SetValue(rec.Phone)
	s.refreshInterestOptions()

	s.button.Label = "Edit Profile"
	if s.store.Mode() == pf.ModeEdit {
		s.button.Label = "Save Profile"
	}
}

// interestOptions is the catalog followed by any selected labels the
// catalog does not offer, so they can still be toggled off.
func (s *ProfileScreen) interestOptions() []string {
	rec := s.store.Snapshot().Record
	extra := lo.Filter(rec.Interests.Strings(), func(l string, _ int) bool {
		return !lo.Contains(s.variant.InterestCatalog, l)
	})
	return append(append([]string(nil), s.variant.InterestCatalog...), extra...)
}

func (s *ProfileScreen) refreshInterestOptions() {
	s.interests.SetOptions(s.interestOptions())
}

func (s *ProfileScreen) resize(width int) {
	s.width = width
	col := columnWidth(width)
	inner := max(col-4, 10)
	s.fullName.Model.SetWidth(inner)
	s.nickname.Model.SetWidth(inner)
	s.email.Model.SetWidth(inner)
	s.phone.Model.SetWidth(inner)
	s.about.Model.SetWidth(inner)
}
