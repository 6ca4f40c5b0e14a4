package profilegen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/profilecard/internal/profile"
)

// CatalogValidator checks interests against the variant: the count must be
// within the configured range and every label must come from the pool.
type CatalogValidator struct{}

func (v *CatalogValidator) Name() string { return "catalog" }

func (v *CatalogValidator) Validate(rec *profile.Record, variant profile.Config) *ValidationError {
	n := rec.Interests.Len()
	if !variant.InterestCount.Contains(n) {
		return &ValidationError{
			Validator: v.Name(),
			Message: fmt.Sprintf("interest count %d outside %d..%d",
				n, variant.InterestCount.Min, variant.InterestCount.Max),
			Retryable: true,
		}
	}

	pool := variant.Pool()
	unknown := lo.Filter(rec.Interests.Strings(), func(l string, _ int) bool {
		return !lo.Contains(pool, l)
	})
	if len(unknown) > 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "interests outside pool: " + strings.Join(unknown, ", "),
			Retryable: true,
		}
	}
	return nil
}
