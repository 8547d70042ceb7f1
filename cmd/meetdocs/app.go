package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/events"
	"github.com/phrazzld/meetdocs/internal/generation"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
	"github.com/phrazzld/meetdocs/internal/platform/gemini"
	"github.com/phrazzld/meetdocs/internal/platform/openai"
	"github.com/phrazzld/meetdocs/internal/prompt"
	"github.com/phrazzld/meetdocs/internal/task"
)

// application holds the wired pipeline shared by the subcommands.
type application struct {
	logger       *slog.Logger
	orchestrator *task.Orchestrator
	store        *filestore.Store
	events       *events.InMemoryEventEmitter
}

// newApplication builds the provider clients, the prompt builder, the
// orchestrator and the file store from configuration.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	tasks, err := task.BindTasks(task.DefaultTasks(), cfg.TaskBindings())
	if err != nil {
		return nil, fmt.Errorf("failed to bind tasks: %w", err)
	}

	builder, err := prompt.NewBuilder(cfg.Pipeline.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	bindings, err := newProviderBindings(ctx, cfg, logger, tasks)
	if err != nil {
		return nil, err
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	orch, err := task.NewOrchestrator(logger, cfg.Pipeline, builder, bindings, tasks, task.WithEmitter(emitter))
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return &application{
		logger:       logger,
		orchestrator: orch,
		store:        filestore.New(logger, cfg.Output),
		events:       emitter,
	}, nil
}

// newProviderBindings creates a client for every provider at least one task
// is bound to.
func newProviderBindings(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	tasks []task.GenerationTask,
) ([]task.ProviderBinding, error) {
	needed := make(map[domain.ProviderID]bool)
	var inUse []domain.ProviderID
	for _, t := range tasks {
		if !needed[t.Provider] {
			inUse = append(inUse, t.Provider)
		}
		needed[t.Provider] = true
	}
	if err := cfg.RequireCredentials(inUse...); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var bindings []task.ProviderBinding
	if needed[domain.ProviderOpenAI] {
		p, err := openai.NewProvider(logger, cfg.Providers.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI provider: %w", err)
		}
		bindings = append(bindings, task.ProviderBinding{
			Client:  p,
			Options: generation.ModelOptions{Model: cfg.Providers.OpenAI.Model},
		})
	}
	if needed[domain.ProviderGemini] {
		p, err := gemini.NewProvider(ctx, logger, cfg.Providers.Gemini)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
		bindings = append(bindings, task.ProviderBinding{
			Client:  p,
			Options: generation.ModelOptions{Model: cfg.Providers.Gemini.Model},
		})
	}
	return bindings, nil
}
