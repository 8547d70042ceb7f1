package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/generation"
	"github.com/phrazzld/meetdocs/internal/redact"
)

var _ generation.ProviderClient = (*Provider)(nil)

// contentGenerator is the slice of the genai client the provider uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider implements generation.ProviderClient using Google's Gemini API.
type Provider struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues GenerateContent calls
	models contentGenerator

	// defaults are the configured model options every call starts from
	defaults generation.ModelOptions
}

// Option customizes the genai client configuration.
type Option func(*genai.ClientConfig)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *genai.ClientConfig) {
		c.HTTPClient = client
	}
}

// NewProvider creates a new Gemini provider with the provided dependencies.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: API key, default model and sampling options; BaseURL overrides the
//     public endpoint
//
// Returns:
//   - A properly initialized Provider or an error wrapping
//     generation.ErrInvalidConfig
func NewProvider(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.ProviderConfig,
	opts ...Option,
) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: gemini model cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/"
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		// The SDK error embeds the full client config, key included.
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s",
			generation.ErrInvalidConfig, strings.ReplaceAll(redact.Error(err), cfg.APIKey, redact.RedactedKeyPlaceholder))
	}

	return newProvider(logger, client.Models, cfg.ModelDefaults()), nil
}

func newProvider(logger *slog.Logger, models contentGenerator, defaults generation.ModelOptions) *Provider {
	return &Provider{
		logger:   logger.With("provider", string(domain.ProviderGemini)),
		models:   models,
		defaults: defaults,
	}
}

// ID implements generation.ProviderClient.
func (p *Provider) ID() domain.ProviderID {
	return domain.ProviderGemini
}

// GenerateText implements generation.ProviderClient.
func (p *Provider) GenerateText(
	ctx context.Context,
	prompt string,
	opts generation.ModelOptions,
) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	opts = opts.Merge(p.defaults)

	start := time.Now()
	p.logger.DebugContext(ctx, "Making Gemini API call",
		"model", opts.Model,
		"prompt_length", len(prompt))

	resp, err := p.models.GenerateContent(ctx, opts.Model, genai.Text(prompt), contentConfig(opts))
	if err != nil {
		perr := generation.NewProviderError(domain.ProviderGemini, classify(err), err)
		p.logger.WarnContext(ctx, "Gemini API call failed",
			"model", opts.Model,
			"kind", string(perr.Kind),
			"elapsed", time.Since(start),
			"error", err)
		return "", perr
	}

	text, err := extractText(resp)
	if err != nil {
		p.logger.WarnContext(ctx, "Gemini API returned an unusable response",
			"model", opts.Model,
			"error", err)
		return "", generation.NewProviderError(domain.ProviderGemini, generation.KindMalformedResponse, err)
	}

	p.logger.DebugContext(ctx, "Gemini API call successful",
		"model", opts.Model,
		"response_length", len(text),
		"elapsed", time.Since(start))

	return text, nil
}

func contentConfig(opts generation.ModelOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: opts.SystemPrompt}},
		}
	}
	return cfg
}

// extractText returns the trimmed text of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("nil response")
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("no content generated")
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		return "", fmt.Errorf("content blocked by safety filters (%s)", candidate.FinishReason)
	}

	if candidate.Content == nil {
		return "", errors.New("empty content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text in response (finish reason %q)", candidate.FinishReason)
	}
	return text, nil
}
