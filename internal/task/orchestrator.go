package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/events"
	"github.com/phrazzld/meetdocs/internal/generation"
	"github.com/phrazzld/meetdocs/internal/prompt"
	"github.com/phrazzld/meetdocs/internal/redact"
)

// Fallbacks applied when the pipeline configuration leaves a value unset.
const (
	defaultCallTimeout    = 60 * time.Second
	defaultRetryBaseDelay = 2 * time.Second
)

// PromptBuilder renders the prompt of one template for a meeting.
type PromptBuilder interface {
	Build(req domain.MeetingRequest, templateID string) (string, error)
	Has(templateID string) bool
	TemplateIDs() []string
}

// ProviderBinding pairs a provider client with the model options every task
// bound to it is sent with.
type ProviderBinding struct {
	Client  generation.ProviderClient
	Options generation.ModelOptions
}

// Orchestrator runs the generation tasks of one meeting and assembles the
// ResultSet. It holds no per-run state and is safe for concurrent use.
type Orchestrator struct {
	logger    *slog.Logger
	builder   PromptBuilder
	tasks     []GenerationTask
	providers map[domain.ProviderID]ProviderBinding

	callTimeout    time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	concurrency    int

	now     func() time.Time
	jitter  func() float64
	emitter events.EventEmitter
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source used for document timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithJitter overrides the random factor in [0, 1) applied to retry delays.
func WithJitter(jitter func() float64) Option {
	return func(o *Orchestrator) { o.jitter = jitter }
}

// WithEmitter publishes task progress events to emitter. Handler errors are
// logged and otherwise ignored.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(o *Orchestrator) { o.emitter = emitter }
}

// NewOrchestrator creates an Orchestrator for the given tasks. Every task's
// provider must be present in providers.
func NewOrchestrator(
	logger *slog.Logger,
	cfg config.PipelineConfig,
	builder PromptBuilder,
	providers []ProviderBinding,
	tasks []GenerationTask,
	opts ...Option,
) (*Orchestrator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if builder == nil {
		return nil, errors.New("prompt builder cannot be nil")
	}
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if !builder.Has(t.TemplateID) {
			return nil, fmt.Errorf("%w: task %q uses template %q, known templates: %s: %w",
				ErrInvalidTask, t.OutputKey, t.TemplateID, strings.Join(builder.TemplateIDs(), ", "),
				prompt.ErrUnknownTemplate)
		}
	}

	byID := make(map[domain.ProviderID]ProviderBinding, len(providers))
	for _, p := range providers {
		if p.Client == nil {
			return nil, fmt.Errorf("%w: nil provider client", ErrNoProvider)
		}
		byID[p.Client.ID()] = p
	}

	inUse := make(map[domain.ProviderID]struct{})
	for _, t := range tasks {
		if _, ok := byID[t.Provider]; !ok {
			return nil, fmt.Errorf("%w: task %q needs provider %q", ErrNoProvider, t.OutputKey, t.Provider)
		}
		inUse[t.Provider] = struct{}{}
	}

	o := &Orchestrator{
		logger:         logger,
		builder:        builder,
		tasks:          append([]GenerationTask(nil), tasks...),
		providers:      byID,
		callTimeout:    cfg.CallTimeout,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		concurrency:    cfg.Concurrency,
		now:            time.Now,
		jitter:         rand.Float64,
	}

	// Apply defaults for invalid config values
	if o.callTimeout <= 0 {
		logger.Warn("invalid call timeout specified, using default",
			"specified", cfg.CallTimeout,
			"default", defaultCallTimeout)
		o.callTimeout = defaultCallTimeout
	}
	if o.maxRetries < 0 {
		o.maxRetries = 0
	}
	if o.retryBaseDelay < 0 {
		o.retryBaseDelay = defaultRetryBaseDelay
	}
	if o.concurrency <= 0 {
		o.concurrency = len(inUse)
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Tasks returns a copy of the bound task list in declaration order.
func (o *Orchestrator) Tasks() []GenerationTask {
	return append([]GenerationTask(nil), o.tasks...)
}

// Run generates every document for req.
//
// The request is validated and every prompt rendered before any provider is
// called. A task failure never affects its siblings: it becomes a failed
// document in the ResultSet and Run still returns a nil error. If ctx ends
// before all tasks finish, Run returns ErrRunCancelled and results that
// arrive afterwards are discarded.
func (o *Orchestrator) Run(ctx context.Context, req domain.MeetingRequest) (*domain.ResultSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompts := make([]string, len(o.tasks))
	for i, t := range o.tasks {
		p, err := o.builder.Build(req, t.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to build prompt for %s: %w", t.OutputKey, err)
		}
		prompts[i] = p
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, err)
	}

	runID := uuid.New()
	runStart := time.Now()
	log := o.logger.With("run_id", runID.String())
	log.InfoContext(ctx, "starting pipeline run",
		"task_count", len(o.tasks),
		"concurrency", o.concurrency)

	// Each task writes only its own slot.
	docs := make([]domain.GeneratedDocument, len(o.tasks))
	done := make(chan struct{})

	go func() {
		defer close(done)

		var g errgroup.Group
		g.SetLimit(o.concurrency)
		for i, t := range o.tasks {
			g.Go(func() error {
				docs[i] = o.execute(ctx, log, runID, t, prompts[i])
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.WarnContext(ctx, "pipeline run cancelled, discarding pending results",
			"error", ctx.Err())
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, ctx.Err())
	}

	// Tasks may have observed a cancellation that raced with completion.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, err)
	}

	rs, err := domain.NewResultSet(runID, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble results: %w", err)
	}

	log.InfoContext(ctx, "pipeline run finished",
		"succeeded", len(rs.Successful()),
		"failed", len(rs.Failed()))

	event := events.NewTaskEvent(runID, events.RunCompleted, "", "")
	event.Elapsed = time.Since(runStart)
	o.emit(ctx, log, event)

	return rs, nil
}

// execute runs one task with retries and converts the outcome into a
// document. It never returns an error.
func (o *Orchestrator) execute(
	ctx context.Context,
	log *slog.Logger,
	runID uuid.UUID,
	t GenerationTask,
	prompt string,
) domain.GeneratedDocument {
	binding := o.providers[t.Provider]
	log = log.With(
		"task", t.OutputKey,
		"provider", string(t.Provider),
		"model", binding.Options.Model)

	start := time.Now()
	attempts := 0
	var lastErr error

	newEvent := func(eventType events.EventType) *events.TaskEvent {
		event := events.NewTaskEvent(runID, eventType, t.OutputKey, string(t.Provider))
		event.Attempt = attempts
		event.Elapsed = time.Since(start)
		return event
	}
	o.emit(ctx, log, newEvent(events.TaskStarted))

	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		attempts++
		text, err := o.call(ctx, binding, prompt)
		if err == nil {
			doc := domain.NewSuccessDocument(t.OutputKey, t.Provider, binding.Options.Model, text, o.now())
			doc.Attempts = attempts
			doc.Elapsed = time.Since(start)
			log.InfoContext(ctx, "task succeeded",
				"attempts", attempts,
				"elapsed", doc.Elapsed)
			o.emit(ctx, log, newEvent(events.TaskCompleted))
			return doc
		}
		lastErr = err

		kind := generation.KindOf(err)
		if !isRetryable(kind) || attempt == o.maxRetries {
			break
		}

		delay := o.backoff(attempt)
		log.WarnContext(ctx, "task attempt failed, retrying",
			"attempt", attempts,
			"kind", string(kind),
			"delay", delay,
			"error", err)

		retrying := newEvent(events.TaskRetrying)
		retrying.FailureKind = string(kind)
		o.emit(ctx, log, retrying)

		if err := sleep(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	kind := generation.KindOf(lastErr)
	reason := redact.Error(lastErr)
	doc := domain.NewFailedDocument(t.OutputKey, t.Provider, binding.Options.Model, string(kind), reason, o.now())
	doc.Attempts = attempts
	doc.Elapsed = time.Since(start)

	log.ErrorContext(ctx, "task failed",
		"attempts", attempts,
		"kind", string(kind),
		"error", lastErr)

	failed := newEvent(events.TaskFailed)
	failed.FailureKind = string(kind)
	o.emit(ctx, log, failed)

	return doc
}

// emit publishes event when an emitter is configured.
func (o *Orchestrator) emit(ctx context.Context, log *slog.Logger, event *events.TaskEvent) {
	if o.emitter == nil {
		return
	}
	if err := o.emitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "event handler failed",
			"event_type", string(event.Type),
			"error", err)
	}
}

type callResult struct {
	text string
	err  error
}

// call performs one provider call bounded by the per-call timeout. The
// timeout is enforced here even when the client ignores its context.
func (o *Orchestrator) call(ctx context.Context, binding ProviderBinding, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	results := make(chan callResult, 1)
	go func() {
		text, err := binding.Client.GenerateText(callCtx, prompt, binding.Options)
		results <- callResult{text: text, err: err}
	}()

	var res callResult
	select {
	case res = <-results:
	case <-callCtx.Done():
		res = callResult{err: callCtx.Err()}
	}

	id := binding.Client.ID()
	if res.err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", generation.NewProviderError(id, generation.KindNetwork,
				fmt.Errorf("call timed out after %s: %w", o.callTimeout, res.err))
		}
		return "", res.err
	}

	text := strings.TrimSpace(res.text)
	if text == "" {
		return "", generation.NewProviderError(id, generation.KindMalformedResponse,
			errors.New("provider returned empty text"))
	}
	return text, nil
}

// backoff returns the delay before retry number attempt+1:
// baseDelay * 2^attempt * (0.5 + jitter*0.5).
func (o *Orchestrator) backoff(attempt int) time.Duration {
	backoff := float64(o.retryBaseDelay) * math.Pow(2, float64(attempt))
	jitterFactor := 0.5 + o.jitter()*0.5
	return time.Duration(backoff * jitterFactor)
}

func isRetryable(kind generation.Kind) bool {
	return kind == generation.KindRateLimit || kind == generation.KindNetwork
}

// sleep waits for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
