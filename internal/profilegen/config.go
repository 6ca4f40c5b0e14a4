package profilegen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated record. The first failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int

	// Timeout caps a single Generate call, including retries.
	// Zero means no extra deadline beyond the caller's context.
	Timeout time.Duration

	// MaxPriorNames is how many recently generated names are listed in the
	// prompt so the model avoids repeating them.
	MaxPriorNames int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&CatalogValidator{},
		},
		MaxTokens:     1024,
		Temperature:   0.9,
		MaxAttempts:   2,
		Timeout:       45 * time.Second,
		MaxPriorNames: 8,
	}
}
