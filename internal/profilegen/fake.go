package profilegen

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/abhisek/profilecard/internal/profile"
)

// AvatarBaseURL is where generated avatar references point. The seed query
// parameter makes every avatar distinct and reproducible.
const AvatarBaseURL = "https://api.dicebear.com/9.x/avataaars/svg"

// FakeGenerator produces profiles from a seeded faker. It never fails.
type FakeGenerator struct {
	mu      sync.Mutex
	faker   *gofakeit.Faker
	variant profile.Config
}

// NewFake returns a FakeGenerator for the given variant. A zero seed picks a
// random one; any other value makes the output sequence reproducible.
func NewFake(variant profile.Config, seed int64) *FakeGenerator {
	return &FakeGenerator{
		faker:   gofakeit.New(seed),
		variant: variant,
	}
}

// Generate returns a fully populated record.
func (g *FakeGenerator) Generate(_ context.Context) (profile.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	f := g.faker
	return profile.Record{
		AvatarURL:    g.avatarLocked(),
		FullName:     f.Name(),
		Nickname:     f.Username(),
		About:        g.aboutLocked(),
		Interests:    profile.NewInterests(g.interestsLocked()...),
		Achievements: []string{f.Sentence(8), f.Sentence(8), f.Sentence(8)},
		Email:        f.Email(),
		Phone:        f.PhoneFormatted(),
	}, nil
}

// Avatar returns a fresh avatar URL.
func (g *FakeGenerator) Avatar(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.avatarLocked(), nil
}

func (g *FakeGenerator) avatarLocked() string {
	return fmt.Sprintf("%s?seed=%s", AvatarBaseURL, g.faker.UUID())
}

func (g *FakeGenerator) aboutLocked() string {
	f := g.faker
	sentences := max(g.variant.AboutSentences, 1)

	if g.variant.AboutStyle == profile.AboutParagraph {
		paragraphs := max(g.variant.AboutParagraphs, 1)
		return f.Paragraph(paragraphs, sentences, 10, "\n\n")
	}

	parts := make([]string, sentences)
	for i := range parts {
		parts[i] = f.Sentence(10)
	}
	return strings.Join(parts, " ")
}

func (g *FakeGenerator) interestsLocked() []string {
	pool := append([]string(nil), g.variant.Pool()...)
	if len(pool) == 0 {
		return nil
	}

	count := g.variant.InterestCount
	n := g.faker.Number(count.Min, min(count.Max, len(pool)))
	g.faker.ShuffleStrings(pool)
	return pool[:n]
}
