package llm

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider used by tests and by the offline
// "mock" provider setting. Queued responses are served first, in order;
// once the queue is empty, Responder answers if set.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	responder func(Request) MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given queued responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// SetResponder installs the fallback used after the queue runs dry. The
// offline provider uses it to answer profile requests from a faker.
func (m *MockProvider) SetResponder(fn func(Request) MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responder = fn
}

// Generate returns the next response. With an empty queue and no responder
// it fails with ErrProviderUnavailable, which callers treat like an outage.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.responder != nil:
		fn := m.responder
		m.mu.Unlock()
		resp = fn(req)
		m.mu.Lock()
	default:
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	m.mu.Unlock()

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
