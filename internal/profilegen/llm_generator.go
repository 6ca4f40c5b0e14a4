package profilegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/abhisek/profilecard/internal/llm"
	"github.com/abhisek/profilecard/internal/profile"
)

// Purpose labels LLM requests made by this package in the request log.
const Purpose = "profile-gen"

// AvatarSource hands out avatar references. LLMs do not produce image URLs,
// so the LLMGenerator delegates avatars to one of these.
type AvatarSource interface {
	Avatar(ctx context.Context) (string, error)
}

// LLMGenerator implements profile.Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	variant  profile.Config
	config   Config
	avatars  AvatarSource
	logger   *log.Logger

	mu         sync.Mutex
	priorNames []string
}

// New creates an LLMGenerator for the variant.
func New(provider llm.Provider, variant profile.Config, cfg Config, avatars AvatarSource) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		variant:  variant,
		config:   cfg,
		avatars:  avatars,
		logger:   log.New(io.Discard),
	}
}

// SetLogger replaces the discard logger.
func (g *LLMGenerator) SetLogger(l *log.Logger) {
	g.logger = l
}

// profileOutput is the raw LLM response before validation.
type profileOutput struct {
	FullName     string   `json:"full_name"`
	Nickname     string   `json:"nickname"`
	About        string   `json:"about"`
	Interests    []string `json:"interests"`
	Achievements []string `json:"achievements"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
}

// Generate asks the model for a profile and runs the validator chain.
// Retryable validation failures are retried up to Config.MaxAttempts.
func (g *LLMGenerator) Generate(ctx context.Context) (profile.Record, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	attempts := max(g.config.MaxAttempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		rec, err := g.generateOnce(ctx)
		if err == nil {
			g.remember(rec.FullName)
			return rec, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return profile.Record{}, err
		}
		g.logger.Warn("generated profile rejected", "attempt", attempt, "validator", verr.Validator, "reason", verr.Message)
	}
	return profile.Record{}, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context) (profile.Record, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(g.variant, g.recentNames(), g.config.MaxPriorNames)},
		},
		Schema:      ProfileSchema(g.variant),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		Purpose:     Purpose,
		Variant:     g.variant.Name,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return profile.Record{}, fmt.Errorf("LLM generation failed: %w", err)
	}
	if resp.Attempts > 1 {
		g.logger.Debug("profile needed several upstream calls", "attempts", resp.Attempts, "model", resp.Model)
	}

	var raw profileOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return profile.Record{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	avatar, err := g.avatars.Avatar(ctx)
	if err != nil {
		return profile.Record{}, fmt.Errorf("avatar: %w", err)
	}

	rec := profile.Record{
		AvatarURL:    avatar,
		FullName:     raw.FullName,
		Nickname:     raw.Nickname,
		About:        raw.About,
		Interests:    profile.Interests(raw.Interests),
		Achievements: raw.Achievements,
		Email:        raw.Email,
		Phone:        raw.Phone,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&rec, g.variant); verr != nil {
			return profile.Record{}, verr
		}
	}
	return rec, nil
}

// Avatar delegates to the configured AvatarSource.
func (g *LLMGenerator) Avatar(ctx context.Context) (string, error) {
	return g.avatars.Avatar(ctx)
}

func (g *LLMGenerator) remember(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.priorNames = append(g.priorNames, name)
	if limit := g.config.MaxPriorNames; limit > 0 && len(g.priorNames) > limit {
		g.priorNames = g.priorNames[len(g.priorNames)-limit:]
	}
}

func (g *LLMGenerator) recentNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.priorNames...)
}
