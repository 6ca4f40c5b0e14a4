package llm

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// EnvPrefix is prepended to every environment variable read by ConfigFromEnv.
const EnvPrefix = "PROFILECARD_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Any OpenAI-compatible endpoint.

	// HTTPClient replaces the SDK's default client when set.
	HTTPClient *http.Client
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"

	// AppName and AppURL identify the app on OpenRouter's dashboards.
	AppName string // Default: "profilecard"
	AppURL  string // Default: "https://github.com/abhisek/profilecard"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from PROFILECARD_* environment variables,
// falling back to defaults for unset values. A malformed timeout is an
// error; everything else is taken as given and checked by Validate.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	bindings := []struct {
		key string
		dst *string
	}{
		{"LLM_PROVIDER", &cfg.Provider},
		{"ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"OPENAI_MODEL", &cfg.OpenAI.Model},
		{"OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"GEMINI_MODEL", &cfg.Gemini.Model},
		{"OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
	for _, b := range bindings {
		if v := os.Getenv(EnvPrefix + b.key); v != "" {
			*b.dst = v
		}
	}

	if v := os.Getenv(EnvPrefix + "LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sLLM_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// DiscoverConfig probes the vendors' standard API key env vars in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig prefers an explicit PROFILECARD_* configuration and falls
// back to DiscoverConfig. The returned bool is false when no provider could
// be configured.
func ResolveConfig() (Config, bool, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, false, err
	}
	if cfg.Validate() == nil {
		return cfg, true, nil
	}
	if found, ok := DiscoverConfig(); ok {
		found.Timeout = cfg.Timeout
		return found, true, nil
	}
	return Config{}, false, nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
			EnvPrefix, envName(c.Provider), c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "openrouter":
		return "OPENROUTER"
	case "gemini":
		return "GEMINI"
	}
	return "ANTHROPIC"
}
