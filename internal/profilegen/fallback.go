package profilegen

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/abhisek/profilecard/internal/llm"
	"github.com/abhisek/profilecard/internal/profile"
)

// FallbackGenerator tries Primary first and uses Secondary when it fails.
// Typically Primary is an LLMGenerator and Secondary a FakeGenerator.
type FallbackGenerator struct {
	Primary   profile.Generator
	Secondary profile.Generator
	Logger    *log.Logger
}

// NewFallback wires primary and secondary with a discard logger.
func NewFallback(primary, secondary profile.Generator) *FallbackGenerator {
	return &FallbackGenerator{
		Primary:   primary,
		Secondary: secondary,
		Logger:    log.New(io.Discard),
	}
}

func (g *FallbackGenerator) Generate(ctx context.Context) (profile.Record, error) {
	rec, err := g.Primary.Generate(ctx)
	if err == nil {
		return rec, nil
	}
	if ctx.Err() != nil {
		return profile.Record{}, err
	}
	g.Logger.Warn("primary generator failed, using fallback", "kind", llm.KindOf(err), "err", err)
	return g.Secondary.Generate(ctx)
}

func (g *FallbackGenerator) Avatar(ctx context.Context) (string, error) {
	url, err := g.Primary.Avatar(ctx)
	if err == nil {
		return url, nil
	}
	g.Logger.Warn("primary avatar failed, using fallback", "err", err)
	return g.Secondary.Avatar(ctx)
}
