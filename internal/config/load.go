package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "MEETDOCS"

// envAliases binds the conventional provider variables alongside the
// prefixed ones. The prefixed name wins when both are set.
var envAliases = map[string][]string{
	"providers.openai.api_key": {"OPENAI_API_KEY"},
	"providers.gemini.api_key": {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// taskKeys lists the output keys whose provider binding may be overridden.
var taskKeys = []string{"notice", "email", "mom", "tasklist"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("server.port", 8080)

	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.openai.model", "gpt-4o-mini")
	v.SetDefault("providers.openai.base_url", "")
	v.SetDefault("providers.openai.temperature", 0.7)
	v.SetDefault("providers.openai.top_p", 0)
	v.SetDefault("providers.openai.max_tokens", 1024)
	v.SetDefault("providers.openai.system_prompt", "")

	v.SetDefault("providers.gemini.api_key", "")
	v.SetDefault("providers.gemini.model", "gemini-1.5-flash")
	v.SetDefault("providers.gemini.base_url", "")
	v.SetDefault("providers.gemini.temperature", 0.7)
	v.SetDefault("providers.gemini.top_p", 0)
	v.SetDefault("providers.gemini.max_tokens", 1024)
	v.SetDefault("providers.gemini.system_prompt", "")

	v.SetDefault("pipeline.call_timeout", 60*time.Second)
	v.SetDefault("pipeline.max_retries", 2)
	v.SetDefault("pipeline.retry_base_delay", 2*time.Second)
	v.SetDefault("pipeline.concurrency", 0)
	v.SetDefault("pipeline.template_dir", "")

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.extension", ".txt")

	for _, key := range taskKeys {
		v.SetDefault("tasks."+key+".provider", "")
	}
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// When configFile is empty, meetdocs.yaml is looked up in the working
// directory and in $HOME/.config/meetdocs; a missing file is not an error.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("meetdocs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/meetdocs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := append([]string{key, prefixed}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
