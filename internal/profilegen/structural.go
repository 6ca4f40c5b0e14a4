package profilegen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/profilecard/internal/profile"
)

const (
	maxNameLen  = 80
	maxAboutLen = 2000
)

// StructuralValidator checks that every text field is filled in, that there
// are exactly three achievements and that interests hold no duplicates.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(rec *profile.Record, _ profile.Config) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf(format, args...),
			Retryable: true,
		}
	}

	required := []profile.Field{
		profile.FieldFullName,
		profile.FieldNickname,
		profile.FieldAbout,
		profile.FieldEmail,
		profile.FieldPhone,
	}
	for _, f := range required {
		if strings.TrimSpace(rec.Get(f)) == "" {
			return fail("%s is empty", f)
		}
	}
	if len(rec.FullName) > maxNameLen {
		return fail("fullName exceeds %d characters", maxNameLen)
	}
	if len(rec.About) > maxAboutLen {
		return fail("about exceeds %d characters", maxAboutLen)
	}
	if len(rec.Achievements) != profile.AchievementCount {
		return fail("want %d achievements, got %d", profile.AchievementCount, len(rec.Achievements))
	}
	for i, a := range rec.Achievements {
		if strings.TrimSpace(a) == "" {
			return fail("achievement %d is empty", i+1)
		}
	}
	if dups := lo.FindDuplicates([]string(rec.Interests)); len(dups) > 0 {
		return fail("duplicate interests: %s", strings.Join(dups, ", "))
	}
	return nil
}
