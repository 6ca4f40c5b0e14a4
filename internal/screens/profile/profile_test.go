package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	pf "github.com/abhisek/profilecard/internal/profile"
	"github.com/abhisek/profilecard/internal/router"
	"github.com/abhisek/profilecard/internal/screens/help"
)

// stubGenerator returns a distinct record on every call.
type stubGenerator struct {
	calls   int
	avatars int
	err     error
}

func (g *stubGenerator) Generate(_ context.Context) (pf.Record, error) {
	if g.err != nil {
		return pf.Record{}, g.err
	}
	g.calls++
	n := g.calls
	return pf.Record{
		AvatarURL:    fmt.Sprintf("https://avatars.test/%d.svg", n),
		FullName:     fmt.Sprintf("Person %d", n),
		Nickname:     fmt.Sprintf("person%d", n),
		About:        fmt.Sprintf("About person %d.", n),
		Interests:    pf.NewInterests("Travel", "Knitting"),
		Achievements: []string{"One.", "Two.", "Three."},
		Email:        fmt.Sprintf("p%d@example.test", n),
		Phone:        fmt.Sprintf("555-%04d", n),
	}, nil
}

func (g *stubGenerator) Avatar(_ context.Context) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.avatars++
	return fmt.Sprintf("https://avatars.test/new-%d.svg", g.avatars), nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

var spaceKey = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}

// run executes cmd and feeds generation results back into s.
func run(s *ProfileScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(s, c)
		}
	case recordReadyMsg, avatarReadyMsg:
		_, next := s.Update(msg)
		run(s, next)
	}
}

func newScreen(t *testing.T) (*ProfileScreen, *pf.Store, *stubGenerator) {
	t.Helper()
	gen := &stubGenerator{}
	store := pf.NewStore(gen)
	if _, err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return New(context.Background(), store, pf.CardConfig(), nil), store, gen
}

func press(s *ProfileScreen, msgs ...tea.Msg) {
	for _, m := range msgs {
		_, cmd := s.Update(m)
		run(s, cmd)
	}
}

func TestInitGeneratesWhenStoreIsEmpty(t *testing.T) {
	gen := &stubGenerator{}
	store := pf.NewStore(gen)
	s := New(context.Background(), store, pf.CardConfig(), nil)

	first := s.View(100, 30)
	if !strings.Contains(first, "Generating profile") {
		t.Error("expected loading text before the first record arrives")
	}
	if strings.Contains(first, "try again") {
		t.Error("first frame must not offer a retry")
	}

	run(s, s.Init())

	snap := store.Snapshot()
	if !snap.Initialized {
		t.Fatal("expected store to be initialized")
	}
	if snap.Mode != pf.ModeView {
		t.Errorf("mode = %v, want view", snap.Mode)
	}
	if !strings.Contains(s.View(100, 30), "Person 1") {
		t.Error("expected the generated name in the view")
	}
}

func TestInitFailureShowsRetry(t *testing.T) {
	gen := &stubGenerator{err: errors.New("no network")}
	store := pf.NewStore(gen)
	s := New(context.Background(), store, pf.CardConfig(), nil)

	run(s, s.Init())
	out := s.View(100, 30)
	if !strings.Contains(out, "no network") {
		t.Errorf("expected failure notice, got:\n%s", out)
	}

	gen.err = nil
	press(s, keyPress('r'))
	if !store.Snapshot().Initialized {
		t.Fatal("expected retry to initialize the store")
	}
}

func TestInitNoopWhenAlreadyInitialized(t *testing.T) {
	s, _, gen := newScreen(t)
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no command for an initialized store")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestViewModeRendering(t *testing.T) {
	s, _, _ := newScreen(t)
	out := s.View(100, 30)

	for _, want := range []string{"Edit Profile", "Person 1", "@person1", "Travel", "Knitting", "Achievements", "Three.", "p1@example.test", "555-0001"} {
		if !strings.Contains(out, want) {
			t.Errorf("view mode missing %q", want)
		}
	}
	if strings.Contains(out, "Save Profile") {
		t.Error("view mode must not show Save Profile")
	}
}

func TestEditToggleShowsSaveButton(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, keyPress('e'))

	if store.Mode() != pf.ModeEdit {
		t.Fatalf("mode = %v, want edit", store.Mode())
	}
	if !s.CapturesInput() {
		t.Error("edit mode should capture input")
	}
	out := s.View(100, 30)
	if !strings.Contains(out, "Save Profile") {
		t.Error("edit mode should show Save Profile")
	}
	if s.Status() != "EDITING" {
		t.Errorf("status = %q", s.Status())
	}
}

func TestEnterOnButtonTogglesMode(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, specialKey(tea.KeyEnter))
	if store.Mode() != pf.ModeEdit {
		t.Fatalf("mode = %v, want edit", store.Mode())
	}
	if s.button.Label != "Save Profile" {
		t.Errorf("button label = %q after enter, want Save Profile", s.button.Label)
	}
	out := s.View(100, 30)
	if !strings.Contains(out, "Save Profile") || strings.Contains(out, "Edit Profile") {
		t.Errorf("button should read Save Profile in edit mode, got:\n%s", out)
	}

	press(s, ctrlKey('s'))
	if s.button.Label != "Edit Profile" {
		t.Errorf("button label = %q after save, want Edit Profile", s.button.Label)
	}
}

func TestTypingDispatchesEveryKeystroke(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, keyPress('e'))

	press(s, keyPress('!'))
	if got := store.Snapshot().Record.FullName; got != "Person 1!" {
		t.Fatalf("full name = %q after one keystroke", got)
	}
	press(s, keyPress('?'))
	if got := store.Snapshot().Record.FullName; got != "Person 1!?" {
		t.Fatalf("full name = %q after two keystrokes", got)
	}
	if store.Mode() != pf.ModeEdit {
		t.Error("typing ? in edit mode must not leave edit mode")
	}
}

func TestTabMovesFocusToNextField(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, keyPress('e'), specialKey(tea.KeyTab), keyPress('x'))

	rec := store.Snapshot().Record
	if rec.Nickname != "person1x" {
		t.Errorf("nickname = %q, want person1x", rec.Nickname)
	}
	if rec.FullName != "Person 1" {
		t.Errorf("full name changed to %q", rec.FullName)
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, keyPress('y'))
	if got := store.Snapshot().Record.FullName; got != "Person 1y" {
		t.Errorf("full name = %q after shift+tab", got)
	}
}

func TestToggleInterestFromCatalog(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, keyPress('e'))
	for range focusInterests {
		press(s, specialKey(tea.KeyTab))
	}

	// Cursor starts on the first catalog entry.
	press(s, spaceKey)
	interests := store.Snapshot().Record.Interests
	if interests[len(interests)-1] != "Music" {
		t.Fatalf("interests = %v, want Music appended", interests)
	}

	press(s, spaceKey)
	if store.Snapshot().Record.Interests.Has("Music") {
		t.Error("second toggle should remove Music")
	}
}

func TestLabelsOutsideCatalogCanBeToggledOff(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, keyPress('e'))

	if !strings.Contains(s.View(100, 30), "Knitting") {
		t.Fatal("edit mode should show selected labels outside the catalog")
	}

	for range focusInterests {
		press(s, specialKey(tea.KeyTab))
	}
	press(s, specialKey(tea.KeyEnd), spaceKey)

	if store.Snapshot().Record.Interests.Has("Knitting") {
		t.Error("expected Knitting to be toggled off")
	}
}

func TestSaveReturnsToViewWithRecordIntact(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{ctrlKey('s'), specialKey(tea.KeyEscape)} {
		t.Run(key.String(), func(t *testing.T) {
			s, store, _ := newScreen(t)
			press(s, keyPress('e'), keyPress('!'))
			edited := store.Snapshot().Record

			press(s, key)

			if store.Mode() != pf.ModeView {
				t.Fatalf("mode = %v, want view", store.Mode())
			}
			if got := store.Snapshot().Record; got.FullName != edited.FullName || got.ID != edited.ID {
				t.Errorf("record changed on save: %+v", got)
			}
		})
	}
}

func TestRandomizeInViewMode(t *testing.T) {
	s, store, _ := newScreen(t)
	before := store.Snapshot().Record

	press(s, keyPress('r'))

	after := store.Snapshot()
	if after.Record.ID == before.ID {
		t.Error("expected a new record ID")
	}
	if after.Record.FullName != "Person 2" {
		t.Errorf("full name = %q, want Person 2", after.Record.FullName)
	}
	if after.Mode != pf.ModeView {
		t.Error("randomize must not change mode")
	}
}

func TestRandomizeInEditModeRefreshesInputs(t *testing.T) {
	s, store, _ := newScreen(t)
	press(s, keyPress('e'), ctrlKey('r'))

	if store.Mode() != pf.ModeEdit {
		t.Fatal("randomize must not change mode")
	}
	if s.fullName.Value() != "Person 2" {
		t.Errorf("input shows %q, want Person 2", s.fullName.Value())
	}
}

func TestRandomizeIgnoredWhileInFlight(t *testing.T) {
	s, _, gen := newScreen(t)

	_, first := s.Update(keyPress('r'))
	if first == nil {
		t.Fatal("expected a generation command")
	}
	_, second := s.Update(keyPress('r'))
	if second != nil {
		t.Error("expected the second randomize to be dropped")
	}
	_, avatar := s.Update(keyPress('a'))
	if avatar != nil {
		t.Error("expected avatar request to be dropped while generating")
	}

	run(s, first)
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
	if s.inFlight {
		t.Error("expected in-flight flag to clear")
	}
}

func TestRandomizeFailureKeepsRecordAndShowsNotice(t *testing.T) {
	s, store, gen := newScreen(t)
	before := store.Snapshot().Record

	gen.err = errors.New("quota exceeded")
	press(s, keyPress('r'))

	if got := store.Snapshot().Record; got.ID != before.ID || got.FullName != before.FullName {
		t.Error("record must be kept on failure")
	}
	if !strings.Contains(s.View(100, 30), "quota exceeded") {
		t.Error("expected notice with the failure")
	}

	gen.err = nil
	press(s, keyPress('x'))
	if strings.Contains(s.View(100, 30), "quota exceeded") {
		t.Error("notice should clear on the next key")
	}
}

func TestAvatarKeyInBothModes(t *testing.T) {
	s, store, _ := newScreen(t)
	before := store.Snapshot().Record

	press(s, keyPress('a'))
	after := store.Snapshot().Record
	if after.AvatarURL != "https://avatars.test/new-1.svg" {
		t.Fatalf("avatar = %q", after.AvatarURL)
	}
	if after.ID != before.ID || after.FullName != before.FullName {
		t.Error("avatar change must leave the rest of the record alone")
	}

	press(s, keyPress('e'), ctrlKey('a'))
	if got := store.Snapshot().Record.AvatarURL; got != "https://avatars.test/new-2.svg" {
		t.Errorf("avatar = %q after ctrl+a", got)
	}
}

func TestHelpKeyPushesHelpScreen(t *testing.T) {
	s, _, _ := newScreen(t)
	_, cmd := s.Update(keyPress('?'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*help.HelpScreen); !ok {
		t.Errorf("pushed %T, want *help.HelpScreen", push.Screen)
	}
}

func TestKeyHintsFollowMode(t *testing.T) {
	s, _, _ := newScreen(t)
	if hints := s.KeyHints(); hints[0].Key != "e" {
		t.Errorf("view hints start with %q", hints[0].Key)
	}
	press(s, keyPress('e'))
	if hints := s.KeyHints(); hints[0].Key != "Tab" {
		t.Errorf("edit hints start with %q", hints[0].Key)
	}
}
