package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/profilecard/internal/ui/theme"
)

// Button is the card's action button. The owner keeps a pointer to it so
// OnPress can relabel the button in place, e.g. "Edit Profile" to
// "Save Profile".
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a button.
func NewButton(label string, active bool, onPress func() tea.Cmd) *Button {
	return &Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update presses the button on enter or space while it is active.
func (b *Button) Update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return nil
	}
	switch kmsg.String() {
	case "enter", "space":
		return b.OnPress()
	}
	return nil
}

func (b *Button) View() string {
	label := "▸ " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
