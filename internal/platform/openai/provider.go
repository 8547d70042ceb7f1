package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/generation"
)

var _ generation.ProviderClient = (*Provider)(nil)

// Provider implements generation.ProviderClient on top of the OpenAI chat
// completion endpoint.
type Provider struct {
	logger   *slog.Logger
	client   *gopenai.Client
	defaults generation.ModelOptions
}

// Option customizes a Provider at construction time.
type Option func(*gopenai.ClientConfig)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *gopenai.ClientConfig) {
		c.HTTPClient = client
	}
}

// NewProvider creates an OpenAI provider from its configuration.
//
// Parameters:
//   - logger: structured logger for call logging
//   - cfg: API key, default model and sampling options; BaseURL overrides the
//     public endpoint (proxies, compatible gateways, tests)
//
// Returns:
//   - a ready Provider, or an error wrapping generation.ErrInvalidConfig
func NewProvider(logger *slog.Logger, cfg config.ProviderConfig, opts ...Option) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: openai model cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := gopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	for _, opt := range opts {
		opt(&clientConfig)
	}

	return &Provider{
		logger:   logger.With("provider", string(domain.ProviderOpenAI)),
		client:   gopenai.NewClientWithConfig(clientConfig),
		defaults: cfg.ModelDefaults(),
	}, nil
}

// ID implements generation.ProviderClient.
func (p *Provider) ID() domain.ProviderID {
	return domain.ProviderOpenAI
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
	req := gopenai.ChatCompletionRequest{
		Model:     opts.Model,
		Messages:  buildMessages(opts.SystemPrompt, prompt),
		MaxTokens: opts.MaxTokens,
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.TopP != nil {
		req.TopP = *opts.TopP
	}

	start := time.Now()
	p.logger.DebugContext(ctx, "Sending chat completion request",
		"model", opts.Model,
		"prompt_length", len(prompt))

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		perr := generation.NewProviderError(domain.ProviderOpenAI, classify(err), err)
		p.logger.WarnContext(ctx, "Chat completion failed",
			"model", opts.Model,
			"kind", string(perr.Kind),
			"elapsed", time.Since(start),
			"error", err)
		return "", perr
	}

	if len(resp.Choices) == 0 {
		return "", generation.NewProviderError(domain.ProviderOpenAI, generation.KindMalformedResponse,
			errors.New("no choices in response"))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", generation.NewProviderError(domain.ProviderOpenAI, generation.KindMalformedResponse,
			fmt.Errorf("empty content in response (finish reason %q)", resp.Choices[0].FinishReason))
	}

	p.logger.DebugContext(ctx, "Chat completion succeeded",
		"model", opts.Model,
		"response_length", len(content),
		"elapsed", time.Since(start))

	return content, nil
}

func buildMessages(systemPrompt, prompt string) []gopenai.ChatCompletionMessage {
	messages := make([]gopenai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    gopenai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	return append(messages, gopenai.ChatCompletionMessage{
		Role:    gopenai.ChatMessageRoleUser,
		Content: prompt,
	})
}

// classify maps a go-openai error onto a provider failure kind.
func classify(err error) generation.Kind {
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return generation.KindFromStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return generation.KindFromStatus(reqErr.HTTPStatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return generation.KindNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return generation.KindNetwork
	}

	return generation.KindMalformedResponse
}
