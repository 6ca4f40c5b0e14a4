package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/abhisek/profilecard/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// event store and mirrors a one-line summary to the application log.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    *log.Logger
}

// WithLogging wraps a Provider with event logging. A nil logger discards
// the summaries.
func WithLogging(p Provider, repo store.EventRepo, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LoggingProvider{inner: p, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := purposeOrUnknown(req)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		Variant:     req.Variant,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		data.ErrorKind = string(KindOf(err))
	}

	logFn := l.logger.Debug
	if err != nil {
		logFn = l.logger.Warn
	}
	logFn("llm request", "purpose", purpose, "variant", req.Variant, "model", data.Model,
		"latency_ms", data.LatencyMs, "in", data.InputTokens, "out", data.OutputTokens,
		"kind", data.ErrorKind, "err", err)

	// A failed audit write must not fail the request.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		l.logger.Warn("failed to record LLM request event", "err", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func providerName(p Provider) string {
	switch p.(type) {
	case *AnthropicProvider:
		return "anthropic"
	case *OpenRouterProvider:
		return "openrouter"
	case *OpenAIProvider:
		return "openai"
	case *GeminiProvider:
		return "gemini"
	case *MockProvider:
		return "mock"
	}
	return "unknown"
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
