package profile

import "github.com/samber/lo"

// Interests is an insertion-ordered set of interest labels.
// Values are immutable from the caller's point of view: every operation
// returns a new Interests and leaves the receiver untouched.
type Interests []string

// NewInterests builds a set from labels, keeping the first occurrence of
// each label and dropping later duplicates.
func NewInterests(labels ...string) Interests {
	if len(labels) == 0 {
		return Interests{}
	}
	return Interests(lo.Uniq(labels))
}

// Has reports whether label is in the set.
func (in Interests) Has(label string) bool {
	return lo.Contains(in, label)
}

// Len returns the number of labels.
func (in Interests) Len() int {
	return len(in)
}

// Toggle removes label when present, otherwise appends it at the end.
// A label that is removed and added again therefore moves to the end.
func (in Interests) Toggle(label string) Interests {
	if in.Has(label) {
		return Interests(lo.Without(in, label))
	}
	out := make(Interests, 0, len(in)+1)
	out = append(out, in...)
	return append(out, label)
}

// Clone returns a copy that does not share storage with in.
func (in Interests) Clone() Interests {
	if in == nil {
		return nil
	}
	return append(Interests(nil), in...)
}

// Equal reports set equality, ignoring order.
func (in Interests) Equal(other Interests) bool {
	if len(in) != len(other) {
		return false
	}
	for _, l := range in {
		if !other.Has(l) {
			return false
		}
	}
	return true
}

// Strings returns the labels as a plain slice copy.
func (in Interests) Strings() []string {
	return append([]string(nil), in...)
}
