package profilegen

import (
	"fmt"

	"github.com/abhisek/profilecard/internal/profile"
)

// Validator checks a generated record before it reaches the Store.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil when rec is acceptable for the variant.
	Validate(rec *profile.Record, variant profile.Config) *ValidationError
}

// ValidationError describes why a generated record was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
