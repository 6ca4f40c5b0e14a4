package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/abhisek/profilecard/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.events = append(r.events, d)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(profileJSON),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, repo, nil)

	_, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   nameSchema,
		Purpose:  "profile-gen",
		Variant:  "card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Purpose != "profile-gen" || e.Variant != "card" || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.ErrorKind != "" {
		t.Errorf("successful request has error kind %q", e.ErrorKind)
	}
	if e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("unexpected tokens: %+v", e)
	}
	if e.ResponseBody != profileJSON {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	for _, want := range []string{"[system]\nsys", "[user]\nhello", "[schema: test-name]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Err: errors.New("kaboom")},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithLogging(mock, repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	e := repo.events[0]
	if e.Success || !strings.Contains(e.ErrorMessage, "kaboom") || e.Purpose != "unknown" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.ErrorKind != string(KindOther) {
		t.Errorf("error kind = %q, want %q", e.ErrorKind, KindOther)
	}

	_, _ = p.Generate(context.Background(), Request{Purpose: "profile-gen"})
	if got := repo.events[1].ErrorKind; got != string(KindRateLimit) {
		t.Errorf("error kind = %q, want %q", got, KindRateLimit)
	}
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("repo failure leaked into request: %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, &recordingRepo{}, nil)
	if err != nil || p.ModelID() != "mock" {
		t.Fatalf("mock provider: %v, %v", p, err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("mock should be wrapped like the others, got %T", p)
	}
	if _, ok := Unwrap(p).(*MockProvider); !ok {
		t.Errorf("Unwrap = %T, want *MockProvider", Unwrap(p))
	}

	p, err = NewProvider(context.Background(), Config{
		Provider:   "openrouter",
		OpenRouter: OpenRouterConfig{APIKey: "k", Model: "x/y"},
		Retry:      RetryConfig{MaxAttempts: 1},
	}, &recordingRepo{}, nil)
	if err != nil {
		t.Fatalf("openrouter provider: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("expected retry wrapper, got %T", p)
	}
	if p.ModelID() != "x/y" {
		t.Errorf("model = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "anthropic"}, nil, nil); err == nil {
		t.Error("expected error for missing anthropic key")
	}
}
