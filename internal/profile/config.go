package profile

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// AboutStyle selects how the generator writes the About text.
type AboutStyle string

const (
	AboutSentences AboutStyle = "sentences"
	AboutParagraph AboutStyle = "paragraph"
)

// Range is an inclusive integer range.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Config parameterizes one profile variant: which interests the editor
// offers, which ones the generator draws from, and how the generator
// shapes its text.
type Config struct {
	// Name identifies the variant, e.g. "classic".
	Name string `json:"name" yaml:"name"`

	// InterestCatalog is the ordered list of toggle buttons in edit mode.
	InterestCatalog []string `json:"interest_catalog" yaml:"interest_catalog"`

	// InterestPool is what the generator samples from.
	// Empty means the catalog itself.
	InterestPool []string `json:"interest_pool,omitempty" yaml:"interest_pool,omitempty"`

	// InterestCount bounds how many interests a generated record holds.
	InterestCount Range `json:"interest_count" yaml:"interest_count"`

	AboutStyle AboutStyle `json:"about_style" yaml:"about_style"`

	// AboutSentences is the sentence count for AboutSentences,
	// and sentences per paragraph for AboutParagraph.
	AboutSentences int `json:"about_sentences,omitempty" yaml:"about_sentences,omitempty"`

	// AboutParagraphs is only used by AboutParagraph.
	AboutParagraphs int `json:"about_paragraphs,omitempty" yaml:"about_paragraphs,omitempty"`
}

// Pool returns the labels the generator samples from.
func (c Config) Pool() []string {
	if len(c.InterestPool) > 0 {
		return c.InterestPool
	}
	return c.InterestCatalog
}

// Validate checks the config for internal consistency.
func (c Config) Validate() error {
	var errs []error

	if len(c.InterestCatalog) == 0 {
		errs = append(errs, errors.New("interest_catalog must not be empty"))
	}
	if dups := lo.FindDuplicates(c.InterestCatalog); len(dups) > 0 {
		errs = append(errs, fmt.Errorf("interest_catalog has duplicates: %v", dups))
	}
	if dups := lo.FindDuplicates(c.InterestPool); len(dups) > 0 {
		errs = append(errs, fmt.Errorf("interest_pool has duplicates: %v", dups))
	}

	pool := c.Pool()
	switch {
	case c.InterestCount.Min < 0:
		errs = append(errs, fmt.Errorf("interest_count.min must be >= 0, got %d", c.InterestCount.Min))
	case c.InterestCount.Min > c.InterestCount.Max:
		errs = append(errs, fmt.Errorf("interest_count.min (%d) exceeds max (%d)", c.InterestCount.Min, c.InterestCount.Max))
	case c.InterestCount.Max > len(pool):
		errs = append(errs, fmt.Errorf("interest_count.max (%d) exceeds pool size (%d)", c.InterestCount.Max, len(pool)))
	}

	switch c.AboutStyle {
	case AboutSentences, AboutParagraph:
	default:
		errs = append(errs, fmt.Errorf("unknown about_style %q", c.AboutStyle))
	}
	if c.AboutSentences < 0 || c.AboutParagraphs < 0 {
		errs = append(errs, errors.New("about_sentences and about_paragraphs must be >= 0"))
	}

	return errors.Join(errs...)
}

// Built-in variant names.
const (
	VariantClassic = "classic"
	VariantCard    = "card"
)

// ClassicConfig is the single-page variant: the generator always picks all
// six base interests, while the editor offers ten.
func ClassicConfig() Config {
	return Config{
		Name: VariantClassic,
		InterestCatalog: []string{
			"Music", "Travel", "Sports", "Reading", "Cooking",
			"Gaming", "Photography", "Fitness", "Art", "Tech",
		},
		InterestPool: []string{
			"Music", "Travel", "Reading", "Cooking", "Photography", "Fitness",
		},
		InterestCount:  Range{Min: 6, Max: 6},
		AboutStyle:     AboutSentences,
		AboutSentences: 2,
	}
}

// CardConfig is the card variant with a paragraph biography.
func CardConfig() Config {
	return Config{
		Name: VariantCard,
		InterestCatalog: []string{
			"Music", "Travel", "Sports", "Reading", "Cooking",
			"Gaming", "Photography", "Fitness", "Art", "Technology",
		},
		InterestCount:   Range{Min: 2, Max: 5},
		AboutStyle:      AboutParagraph,
		AboutSentences:  4,
		AboutParagraphs: 1,
	}
}

// DefaultConfig returns the classic variant.
func DefaultConfig() Config {
	return ClassicConfig()
}

// Preset returns a built-in variant by name.
func Preset(name string) (Config, error) {
	switch name {
	case "", VariantClassic:
		return ClassicConfig(), nil
	case VariantCard:
		return CardConfig(), nil
	}
	return Config{}, fmt.Errorf("unknown variant %q (want %s or %s)", name, VariantClassic, VariantCard)
}
