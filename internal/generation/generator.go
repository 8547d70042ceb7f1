package generation

import (
	"context"

	"github.com/phrazzld/meetdocs/internal/domain"
)

// ProviderClient is the capability of an external text-generation backend.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type ProviderClient interface {
	// ID returns the provider identifier tasks are bound to.
	ID() domain.ProviderID

	// GenerateText sends prompt to the backend and returns the generated text.
	//
	// Implementations make exactly one outbound call per invocation, never
	// cache results and never retry. Failures are returned as *ProviderError.
	// An empty prompt is rejected with ErrEmptyPrompt before any call.
	GenerateText(ctx context.Context, prompt string, opts ModelOptions) (string, error)
}

// ModelOptions carries the model identifier and optional sampling
// parameters for a single call. Nil or zero values mean "provider default".
type ModelOptions struct {
	Model        string
	SystemPrompt string
	Temperature  *float32
	TopP         *float32
	MaxTokens    int
}

// Merge returns o with every unset field taken from defaults.
func (o ModelOptions) Merge(defaults ModelOptions) ModelOptions {
	if o.Model == "" {
		o.Model = defaults.Model
	}
	if o.SystemPrompt == "" {
		o.SystemPrompt = defaults.SystemPrompt
	}
	if o.Temperature == nil {
		o.Temperature = defaults.Temperature
	}
	if o.TopP == nil {
		o.TopP = defaults.TopP
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = defaults.MaxTokens
	}
	return o
}

// Float32 returns a pointer to v, for optional sampling parameters.
func Float32(v float32) *float32 {
	return &v
}
