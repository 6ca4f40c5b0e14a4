package profilegen

import (
	"github.com/abhisek/profilecard/internal/llm"
	"github.com/abhisek/profilecard/internal/profile"
)

// ProfileSchema builds the JSON schema for LLM profile responses. The
// interest labels are restricted to the variant's pool.
func ProfileSchema(variant profile.Config) *llm.Schema {
	pool := make([]any, 0, len(variant.Pool()))
	for _, l := range variant.Pool() {
		pool = append(pool, l)
	}

	return &llm.Schema{
		Name:        "user-profile-" + variant.Name,
		Description: "A single fictional user profile for a profile card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"full_name": map[string]any{
					"type":        "string",
					"description": "First and last name of a fictional person",
				},
				"nickname": map[string]any{
					"type":        "string",
					"description": "A short lowercase username without spaces",
				},
				"about": map[string]any{
					"type":        "string",
					"description": "A short first-person biography",
				},
				"interests": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string", "enum": pool},
					"minItems":    variant.InterestCount.Min,
					"maxItems":    variant.InterestCount.Max,
					"uniqueItems": true,
					"description": "Hobbies picked from the allowed list",
				},
				"achievements": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    profile.AchievementCount,
					"maxItems":    profile.AchievementCount,
					"description": "Exactly three one-sentence personal achievements",
				},
				"email": map[string]any{
					"type":        "string",
					"description": "A plausible email address on example.com",
				},
				"phone": map[string]any{
					"type":        "string",
					"description": "A phone number in a common human-readable format",
				},
			},
			"required":             []any{"full_name", "nickname", "about", "interests", "achievements", "email", "phone"},
			"additionalProperties": false,
		},
	}
}
