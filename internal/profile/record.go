package profile

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// AchievementCount is the fixed length of Record.Achievements.
const AchievementCount = 3

// Record is a single synthetic user profile.
type Record struct {
	// ID is assigned by the Store whenever a whole record is installed.
	// Field edits keep the ID; initialize and randomize replace it.
	ID string `json:"id" yaml:"id"`

	AvatarURL    string    `json:"avatarUrl" yaml:"avatar_url"`
	FullName     string    `json:"fullName" yaml:"full_name"`
	Nickname     string    `json:"nickname" yaml:"nickname"`
	About        string    `json:"about" yaml:"about"`
	Interests    Interests `json:"interests" yaml:"interests"`
	Achievements []string  `json:"achievements" yaml:"achievements"`
	Email        string    `json:"email" yaml:"email"`
	Phone        string    `json:"phone" yaml:"phone"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Interests = r.Interests.Clone()
	if r.Achievements != nil {
		out.Achievements = append([]string(nil), r.Achievements...)
	}
	return out
}

// Get returns the value of a scalar field.
func (r Record) Get(f Field) string {
	switch f {
	case FieldAvatarURL:
		return r.AvatarURL
	case FieldFullName:
		return r.FullName
	case FieldNickname:
		return r.Nickname
	case FieldAbout:
		return r.About
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	}
	return ""
}

// With returns a copy of r with field f set to value.
func (r Record) With(f Field, value string) Record {
	out := r.Clone()
	switch f {
	case FieldAvatarURL:
		out.AvatarURL = value
	case FieldFullName:
		out.FullName = value
	case FieldNickname:
		out.Nickname = value
	case FieldAbout:
		out.About = value
	case FieldEmail:
		out.Email = value
	case FieldPhone:
		out.Phone = value
	}
	return out
}

// Check reports whether r satisfies the record invariants.
func (r Record) Check() error {
	if len(r.Achievements) != AchievementCount {
		return &InvariantError{
			Rule:   "achievements",
			Detail: fmt.Sprintf("want %d achievements, got %d", AchievementCount, len(r.Achievements)),
		}
	}
	if dups := lo.FindDuplicates([]string(r.Interests)); len(dups) > 0 {
		return &InvariantError{
			Rule:   "interests",
			Detail: "duplicate labels: " + strings.Join(dups, ", "),
		}
	}
	return nil
}

// Field names a scalar, editable field of a Record.
type Field string

const (
	FieldAvatarURL Field = "avatarUrl"
	FieldFullName  Field = "fullName"
	FieldNickname  Field = "nickname"
	FieldAbout     Field = "about"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
)

// Fields lists every scalar field in display order.
var Fields = []Field{
	FieldAvatarURL,
	FieldFullName,
	FieldNickname,
	FieldAbout,
	FieldEmail,
	FieldPhone,
}

// ParseField resolves a field name, ignoring case.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Label returns the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldAvatarURL:
		return "Avatar"
	case FieldFullName:
		return "Full Name"
	case FieldNickname:
		return "Nickname"
	case FieldAbout:
		return "About Me"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	}
	return string(f)
}

// Mode is the presentation mode of the profile.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "view"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeEdit {
		return ModeView
	}
	return ModeEdit
}
