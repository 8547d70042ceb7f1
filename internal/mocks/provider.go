package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/generation"
)

var _ generation.ProviderClient = (*MockProvider)(nil)

// MockProvider implements generation.ProviderClient for testing
type MockProvider struct {
	// Provider is returned by ID
	Provider domain.ProviderID

	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string, opts generation.ModelOptions) (string, error)

	// Default response values
	Text string
	Err  error

	// mu protects the call tracking state for concurrent callers
	mu sync.Mutex

	// calls records every GenerateText invocation in arrival order
	calls []ProviderCall
}

// ProviderCall captures the arguments of one GenerateText invocation.
type ProviderCall struct {
	Prompt  string
	Options generation.ModelOptions
}

// NewMockProviderWithText creates a MockProvider that always returns text.
func NewMockProviderWithText(id domain.ProviderID, text string) *MockProvider {
	return &MockProvider{Provider: id, Text: text}
}

// NewMockProviderWithError creates a MockProvider that always fails with err.
func NewMockProviderWithError(id domain.ProviderID, err error) *MockProvider {
	return &MockProvider{Provider: id, Err: err}
}

// ID implements generation.ProviderClient
func (m *MockProvider) ID() domain.ProviderID {
	return m.Provider
}

// GenerateText implements generation.ProviderClient
func (m *MockProvider) GenerateText(
	ctx context.Context,
	prompt string,
	opts generation.ModelOptions,
) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ProviderCall{Prompt: prompt, Options: opts})
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt, opts)
	}

	return m.Text, m.Err
}

// CallCount returns how many times GenerateText was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded invocations.
func (m *MockProvider) Calls() []ProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProviderCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Prompts returns the prompts of every recorded invocation.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Prompt)
	}
	return out
}

// Reset clears the recorded invocations.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
