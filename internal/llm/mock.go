package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockText builds a canned schema-less reply.
func MockText(s string) MockResponse {
	return MockResponse{Content: textContent(s)}
}

// MockProvider is a deterministic Provider for tests and the offline
// "mock" provider. Responses routed to a schema name are served to
// requests using that schema; everything else comes from a FIFO queue.
// Canned content is validated against the request schema like a real
// provider's output.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	routes    map[string][]MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses, routes: make(map[string][]MockResponse)}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// nothing is queued for the request.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	if req.Schema != nil {
		if q := m.routes[req.Schema.Name]; len(q) > 0 {
			m.routes[req.Schema.Name] = q[1:]
			return q[0], true
		}
	}
	if len(m.responses) == 0 {
		return MockResponse{}, false
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, true
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

// Route queues resp for requests whose schema is named schemaName.
func (m *MockProvider) Route(schemaName string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[schemaName] = append(m.routes[schemaName], resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
