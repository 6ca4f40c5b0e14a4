package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterAppName = "profilecard"
	defaultOpenRouterAppURL  = "https://github.com/abhisek/profilecard"
)

// OpenRouterProvider talks to OpenRouter through the OpenAI SDK, since
// OpenRouter speaks the chat completions API. Model IDs such as
// "anthropic/claude-3-haiku" are passed through untouched.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Every request carries the app attribution headers OpenRouter reads.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	appName := cfg.AppName
	if appName == "" {
		appName = defaultOpenRouterAppName
	}
	appURL := cfg.AppURL
	if appURL == "" {
		appURL = defaultOpenRouterAppURL
	}

	client := &http.Client{Transport: attributionTransport{
		next:    http.DefaultTransport,
		headers: http.Header{
			"X-Title":      {appName},
			"Http-Referer": {appURL},
		},
	}}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    baseURL,
		HTTPClient: client,
	})
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport sets fixed headers on every outgoing request.
type attributionTransport struct {
	next    http.RoundTripper
	headers http.Header
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header[k] = v
	}
	return t.next.RoundTrip(req)
}
