package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, muted card tones with a violet accent.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Violet
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// FieldLabel is the small caption above each profile field.
	FieldLabel = lipgloss.NewStyle().
			Foreground(TextDim).
			Bold(true)

	SectionHeading = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Focused = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Primary).
		PaddingLeft(1)

	Blurred = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder(), false, false, false, true).
		PaddingLeft(1)

	Notice = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Busy = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)
)

// Components
var (
	Badge = lipgloss.NewStyle().
		Background(Secondary).
		Foreground(BgDark).
		Padding(0, 1)

	ToggleOn = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	ToggleOff = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 1)

	// ToggleCursor marks the toggle under the keyboard cursor.
	ToggleCursor = lipgloss.NewStyle().
			Underline(true)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
