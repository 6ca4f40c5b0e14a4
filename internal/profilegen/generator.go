// Package profilegen produces random profile records for the profile store.
package profilegen

import "github.com/abhisek/profilecard/internal/profile"

var (
	_ profile.Generator = (*FakeGenerator)(nil)
	_ profile.Generator = (*LLMGenerator)(nil)
	_ profile.Generator = (*FallbackGenerator)(nil)
)
