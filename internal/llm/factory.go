package llm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abhisek/profilecard/internal/store"
)

// NewProvider creates a Provider from configuration. The result is wrapped
// with retry and logging middleware: caller → retry → logging → base.
// A nil eventRepo disables request logging. The "mock" provider goes
// through the same chain; callers reach it with Unwrap to set a responder.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *log.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo, logger)
	}
	return WithRetry(p, cfg.Retry), nil
}

// Unwrap strips the retry and logging decorators from p.
func Unwrap(p Provider) Provider {
	for {
		switch w := p.(type) {
		case *RetryProvider:
			p = w.inner
		case *LoggingProvider:
			p = w.inner
		default:
			return p
		}
	}
}
