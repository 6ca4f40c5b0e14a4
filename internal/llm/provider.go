package llm

import (
	"context"

	"github.com/goccy/go-json"
)

// Provider is the core abstraction for LLM interaction. Profile generation
// sends one schema-constrained Request and reads the JSON object back.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the provider uses its native structured output
	// mechanism and Content is validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Profile requests carry a single user
	// message listing the variant's constraints and names to avoid.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// Content is the raw text response.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64

	// Purpose and Variant label the request in the request log, e.g.
	// "profile-gen" for the "card" variant. They are never sent upstream.
	Purpose string
	Variant string
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name for
	// OpenAI) and keys the compiled-schema cache, e.g. "user-profile-card".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when the request had a Schema,
	// otherwise the raw text wrapped as a JSON string.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string

	// Attempts is how many upstream calls it took. Set by RetryProvider;
	// zero when no retry decorator is in the chain.
	Attempts int
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// purposeOrUnknown is the label logged for unlabelled requests.
func purposeOrUnknown(req Request) string {
	if req.Purpose == "" {
		return "unknown"
	}
	return req.Purpose
}
