package llm

import (
	"context"
	"sync"
)

// MockLLM is a mock implementation of the LLM interface.
// It records calls and can be configured to return a fixed response or error.
type MockLLM struct {
	// Response is the text response to return.
	Response string
	// Err is the error to return (if any).
	Err error
	// StreamTokens overrides Response for streaming; each element is
	// sent as a separate token.
	StreamTokens []string

	mu            sync.Mutex
	completeCalls int
	chatCalls     int
	streamCalls   int
	lastPrompt    string
}

// NewMockLLM creates a new MockLLM with a fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a new MockLLM that returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Err: err}
}

// Complete returns the configured response.
func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.completeCalls++
	m.lastPrompt = prompt
	m.mu.Unlock()
	return m.Response, m.Err
}

// Chat returns the configured response.
func (m *MockLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	m.mu.Lock()
	m.chatCalls++
	if len(messages) > 0 {
		m.lastPrompt = messages[len(messages)-1].Content
	}
	m.mu.Unlock()
	return m.Response, m.Err
}

// Stream returns the configured response as a token stream.
func (m *MockLLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	m.mu.Lock()
	m.streamCalls++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	tokens := m.StreamTokens
	if tokens == nil {
		tokens = []string{m.Response}
	}

	ch := make(chan string, len(tokens))
	for _, token := range tokens {
		ch <- token
	}
	close(ch)
	return ch, nil
}

// Metadata returns mock model metadata.
func (m *MockLLM) Metadata() LLMMetadata {
	return DefaultLLMMetadata("mock-model")
}

// CompleteCalls returns the number of Complete calls made.
func (m *MockLLM) CompleteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completeCalls
}

// StreamCalls returns the number of Stream calls made.
func (m *MockLLM) StreamCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streamCalls
}

// LastPrompt returns the prompt of the most recent call.
func (m *MockLLM) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

var _ LLM = (*MockLLM)(nil)
var _ LLMWithMetadata = (*MockLLM)(nil)
