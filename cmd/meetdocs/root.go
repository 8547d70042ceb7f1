package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/platform/logger"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	configFile string
	envFile    string
	logLevel   string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "meetdocs",
		Short: "Generate meeting documents with OpenAI and Gemini",
		Long: `meetdocs turns a meeting's date, time, agenda and attendees into four
documents: a meeting notice, a staff summary email, a minutes-of-meeting
template and a follow-up task list.

Provider credentials come from OPENAI_API_KEY and GEMINI_API_KEY (or
GOOGLE_API_KEY), which may be placed in a .env file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: ./meetdocs.yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newTasksCmd(opts))

	return cmd
}

// loadEnvFile loads the dotenv file into the process environment. Variables
// already set are kept. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the environment and configuration file and sets up the
// default logger on the command's error stream.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, *slog.Logger, error) {
	if err := loadEnvFile(opts.envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, err := logger.SetupTo(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		"openai_model", cfg.Providers.OpenAI.Model,
		"gemini_model", cfg.Providers.Gemini.Model,
		"output_dir", cfg.Output.Dir)

	return cfg, log, nil
}
