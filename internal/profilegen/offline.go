package profilegen

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/abhisek/profilecard/internal/llm"
)

// MockResponder answers profile requests on the offline "mock" provider with
// records drawn from fake, shaped like a model's structured output.
func MockResponder(fake *FakeGenerator) func(llm.Request) llm.MockResponse {
	return func(llm.Request) llm.MockResponse {
		rec, err := fake.Generate(context.Background())
		if err != nil {
			return llm.MockResponse{Err: err}
		}
		content, err := json.Marshal(profileOutput{
			FullName:     rec.FullName,
			Nickname:     rec.Nickname,
			About:        rec.About,
			Interests:    rec.Interests.Strings(),
			Achievements: rec.Achievements,
			Email:        rec.Email,
			Phone:        rec.Phone,
		})
		if err != nil {
			return llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: err}}
		}
		return llm.MockResponse{Content: content}
	}
}
