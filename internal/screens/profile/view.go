package profile

import (
	"strings"

	"charm.land/lipgloss/v2"

	pf "github.com/abhisek/profilecard/internal/profile"
	"github.com/abhisek/profilecard/internal/ui/components"
	"github.com/abhisek/profilecard/internal/ui/theme"
)

// columnWidth is the width of one of the two card columns.
func columnWidth(width int) int {
	return max((width-6)/2, 20)
}

func (s *ProfileScreen) View(width, height int) string {
	snap := s.store.Snapshot()
	if !snap.Initialized {
		return s.renderPlaceholder(width)
	}

	var left, right string
	if snap.Mode == pf.ModeEdit {
		left, right = s.renderEditColumns(snap.Record, width)
	} else {
		left, right = s.renderViewColumns(snap.Record, width)
	}

	col := columnWidth(width)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(col).Render(left),
		"  ",
		lipgloss.NewStyle().Width(col).Render(right),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		"",
		s.button.View()+"  "+s.renderStatusLine(),
	)
}

func (s *ProfileScreen) renderPlaceholder(width int) string {
	msg := s.spinner.View() + " " + theme.Busy.Render(s.busyText+"...")
	if !s.inFlight && s.notice != "" {
		msg = theme.Notice.Render(s.notice) + "\n\n" + theme.Hint.Render("Press r to try again or q to quit.")
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n\n" + msg)
}

// renderStatusLine shows the in-flight spinner or the last notice.
func (s *ProfileScreen) renderStatusLine() string {
	switch {
	case s.inFlight:
		return s.spinner.View() + " " + theme.Busy.Render(s.busyText+"...")
	case s.notice != "":
		return theme.Notice.Render("! " + s.notice)
	}
	return ""
}

func (s *ProfileScreen) renderViewColumns(rec pf.Record, width int) (string, string) {
	col := columnWidth(width)
	text := lipgloss.NewStyle().Width(col).Foreground(theme.Text)

	var l strings.Builder
	l.WriteString(renderAvatar(rec.AvatarURL, col))
	l.WriteString("\n\n")
	l.WriteString(theme.Title.Render(rec.FullName))
	l.WriteString("\n")
	l.WriteString(theme.Subtitle.Render("@" + rec.Nickname))
	l.WriteString("\n\n")
	l.WriteString(theme.SectionHeading.Render("About"))
	l.WriteString("\n")
	l.WriteString(text.Render(rec.About))

	var r strings.Builder
	r.WriteString(theme.SectionHeading.Render("Interests"))
	r.WriteString("\n")
	r.WriteString(components.Badges(rec.Interests.Strings(), col))
	r.WriteString("\n\n")
	r.WriteString(renderAchievements(rec.Achievements, col))
	r.WriteString("\n\n")
	r.WriteString(renderContact(rec, col))

	return l.String(), r.String()
}

func (s *ProfileScreen) renderEditColumns(rec pf.Record, width int) (string, string) {
	col := columnWidth(width)

	left := strings.Join([]string{
		renderAvatar(rec.AvatarURL, col),
		s.fullName.View(),
		s.nickname.View(),
		s.about.View(),
	}, "\n")

	right := strings.Join([]string{
		s.interests.View(rec.Interests.Has, col-2),
		s.email.View(),
		s.phone.View(),
		renderAchievements(rec.Achievements, col),
	}, "\n")

	return left, right
}

func renderAvatar(url string, width int) string {
	return theme.FieldLabel.Render("Avatar") + "\n" +
		lipgloss.NewStyle().Width(width).Foreground(theme.Accent).Render("◉ "+url)
}

func renderAchievements(items []string, width int) string {
	bullet := lipgloss.NewStyle().Width(width - 2).Foreground(theme.Text)
	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render("Achievements"))
	for _, a := range items {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "• ", bullet.Render(a)))
	}
	return b.String()
}

func renderContact(rec pf.Record, width int) string {
	line := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
	return theme.SectionHeading.Render("Contact") + "\n" +
		line.Render("✉ "+rec.Email) + "\n" +
		line.Render("☎ "+rec.Phone)
}
