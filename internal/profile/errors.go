package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when an operation needs a record but
	// Initialize has not completed yet.
	ErrNotInitialized = errors.New("profile store not initialized")

	// ErrUnknownField is returned by ParseField for names outside Fields.
	ErrUnknownField = errors.New("unknown profile field")
)

// InvariantError describes a record that cannot be installed because it
// breaks one of the record invariants.
type InvariantError struct {
	Rule   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("profile invariant %q violated: %s", e.Rule, e.Detail)
}
