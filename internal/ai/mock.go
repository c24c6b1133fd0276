package ai

import "context"

// MockProvider is a test double for AI providers. Responses are served in
// order; the last one repeats once the queue is exhausted.
type MockProvider struct {
	Responses []string
	Err       error
	Requests  []CompletionRequest // captures every request for inspection
	next      int
}

// NewMockProvider creates a MockProvider that returns the given responses.
func NewMockProvider(responses ...string) *MockProvider {
	return &MockProvider{Responses: responses}
}

func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (CompletionResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return CompletionResponse{}, m.Err
	}

	content := ""
	if len(m.Responses) > 0 {
		i := m.next
		if i >= len(m.Responses) {
			i = len(m.Responses) - 1
		}
		content = m.Responses[i]
		m.next++
	}

	return CompletionResponse{
		Content:      content,
		Model:        "mock",
		InputTokens:  10,
		OutputTokens: len(content),
	}, nil
}

func (m *MockProvider) Models() []ModelInfo {
	return []ModelInfo{
		{ID: "mock", Name: "Mock Model", MaxTokens: 4096, Description: "Test mock"},
	}
}

func (m *MockProvider) HealthCheck(_ context.Context) error {
	return m.Err
}
