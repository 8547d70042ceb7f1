package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestMockProvider_Defaults(t *testing.T) {
	t.Parallel()

	m := NewMockProviderWithText(domain.ProviderOpenAI, "notice")
	text, err := m.GenerateText(context.Background(), "prompt", generation.ModelOptions{Model: "gpt-4o-mini"})

	assert.NoError(t, err)
	assert.Equal(t, "notice", text)
	assert.Equal(t, domain.ProviderOpenAI, m.ID())
	assert.Equal(t, []ProviderCall{{Prompt: "prompt", Options: generation.ModelOptions{Model: "gpt-4o-mini"}}}, m.Calls())
}

func TestMockProvider_Error(t *testing.T) {
	t.Parallel()

	want := errors.New("boom")
	m := NewMockProviderWithError(domain.ProviderGemini, want)
	_, err := m.GenerateText(context.Background(), "prompt", generation.ModelOptions{})

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 1, m.CallCount())

	m.Reset()
	assert.Zero(t, m.CallCount())
}

func TestMockProvider_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	m := &MockProvider{
		Provider: domain.ProviderGemini,
		GenerateTextFn: func(_ context.Context, prompt string, _ generation.ModelOptions) (string, error) {
			return prompt + "!", nil
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.GenerateText(context.Background(), "p", generation.ModelOptions{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, m.CallCount())
	assert.Len(t, m.Prompts(), 20)
}
