package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/generation"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log       LogConfig             `mapstructure:"log"       validate:"required"`
	Server    ServerConfig          `mapstructure:"server"    validate:"required"`
	Providers ProvidersConfig       `mapstructure:"providers" validate:"required"`
	Pipeline  PipelineConfig        `mapstructure:"pipeline"  validate:"required"`
	Output    OutputConfig          `mapstructure:"output"    validate:"required"`
	Tasks     map[string]TaskConfig `mapstructure:"tasks"     validate:"dive"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	// File, when set, receives logs through a rotating writer instead of stdout.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// ServerConfig contains the HTTP presentation settings.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,gt=0,lt=65536"`
}

// ProvidersConfig maps each provider identifier to its settings.
type ProvidersConfig struct {
	OpenAI ProviderConfig `mapstructure:"openai" validate:"required"`
	Gemini ProviderConfig `mapstructure:"gemini" validate:"required"`
}

// ProviderConfig holds the credentials and default model options of one
// text-generation backend.
type ProviderConfig struct {
	// APIKey is checked by RequireCredentials, only for providers in use.
	APIKey       string  `mapstructure:"api_key"`
	Model        string  `mapstructure:"model"         validate:"required"`
	BaseURL      string  `mapstructure:"base_url"      validate:"omitempty,url"`
	Temperature  float32 `mapstructure:"temperature"   validate:"gte=0,lte=2"`
	TopP         float32 `mapstructure:"top_p"         validate:"gte=0,lte=1"`
	MaxTokens    int     `mapstructure:"max_tokens"    validate:"gte=0"`
	SystemPrompt string  `mapstructure:"system_prompt"`
}

// PipelineConfig bounds how the orchestrator calls providers.
type PipelineConfig struct {
	CallTimeout    time.Duration `mapstructure:"call_timeout"     validate:"gt=0"`
	MaxRetries     int           `mapstructure:"max_retries"      validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gte=0"`
	// Concurrency caps simultaneous provider calls; zero means one slot per
	// distinct provider in use.
	Concurrency int `mapstructure:"concurrency" validate:"gte=0"`
	// TemplateDir optionally overrides embedded prompt templates by file name.
	TemplateDir string `mapstructure:"template_dir"`
}

// OutputConfig controls where and how documents are persisted.
type OutputConfig struct {
	Dir       string `mapstructure:"dir"       validate:"required"`
	Extension string `mapstructure:"extension" validate:"required,startswith=."`
}

// TaskConfig overrides the provider a task is bound to.
type TaskConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=openai gemini"`
}

// Provider returns the settings for the given provider identifier.
func (c *Config) Provider(id domain.ProviderID) (ProviderConfig, bool) {
	switch id {
	case domain.ProviderOpenAI:
		return c.Providers.OpenAI, true
	case domain.ProviderGemini:
		return c.Providers.Gemini, true
	default:
		return ProviderConfig{}, false
	}
}

// TaskBindings returns the configured provider overrides keyed by output key.
// Tasks without an override are omitted.
func (c *Config) TaskBindings() map[string]domain.ProviderID {
	out := make(map[string]domain.ProviderID, len(c.Tasks))
	for key, tc := range c.Tasks {
		if tc.Provider != "" {
			out[key] = domain.ProviderID(tc.Provider)
		}
	}
	return out
}

// ErrMissingCredentials is returned when a provider some task is bound to
// has no API key.
var ErrMissingCredentials = errors.New("missing provider credentials")

// RequireCredentials checks that every provider in ids has an API key.
// Providers no task is bound to may stay unconfigured.
func (c *Config) RequireCredentials(ids ...domain.ProviderID) error {
	var errs []error
	for _, id := range ids {
		pc, ok := c.Provider(id)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown provider %q", id))
			continue
		}
		if pc.APIKey == "" {
			errs = append(errs, fmt.Errorf("%w: providers.%s.api_key is required", ErrMissingCredentials, id))
		}
	}
	return errors.Join(errs...)
}

// ModelDefaults converts the provider settings into the default options every
// call to that provider starts from. Zero sampling values mean "provider
// default" and stay unset.
func (p ProviderConfig) ModelDefaults() generation.ModelOptions {
	opts := generation.ModelOptions{
		Model:        p.Model,
		SystemPrompt: p.SystemPrompt,
		MaxTokens:    p.MaxTokens,
	}
	if p.Temperature > 0 {
		opts.Temperature = generation.Float32(p.Temperature)
	}
	if p.TopP > 0 {
		opts.TopP = generation.Float32(p.TopP)
	}
	return opts
}
