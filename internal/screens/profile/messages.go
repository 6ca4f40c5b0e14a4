package profile

import pf "github.com/abhisek/profilecard/internal/profile"

// recordReadyMsg carries the result of a whole-record generation.
type recordReadyMsg struct {
	Record pf.Record
	Err    error
}

// avatarReadyMsg carries the result of an avatar-only generation.
type avatarReadyMsg struct {
	URL string
	Err error
}
