package components

import "github.com/abhisek/profilecard/internal/ui/theme"

// Badges renders labels as a wrapped row of read-only pills.
func Badges(labels []string, width int) string {
	if len(labels) == 0 {
		return theme.Hint.Render("No interests yet")
	}
	pills := make([]string, 0, len(labels))
	for _, l := range labels {
		pills = append(pills, theme.Badge.Render(l))
	}
	return wrapRow(pills, width)
}
