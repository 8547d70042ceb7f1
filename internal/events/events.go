package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names the lifecycle step a TaskEvent reports.
type EventType string

// Lifecycle steps, in the order a task goes through them.
const (
	TaskStarted   EventType = "task_started"
	TaskRetrying  EventType = "task_retrying"
	TaskCompleted EventType = "task_completed"
	TaskFailed    EventType = "task_failed"
	RunCompleted  EventType = "run_completed"
)

// TaskEvent reports one step of a pipeline run. Key and Provider are empty
// for RunCompleted.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// RunID identifies the run the event belongs to
	RunID uuid.UUID `json:"run_id"`

	Type     EventType `json:"type"`
	Key      string    `json:"key,omitempty"`
	Provider string    `json:"provider,omitempty"`

	// Attempt is the 1-based attempt the event refers to
	Attempt int `json:"attempt,omitempty"`

	// FailureKind is set for TaskRetrying and TaskFailed
	FailureKind string `json:"failure_kind,omitempty"`

	// Elapsed is the time spent on the task, or on the run for RunCompleted
	Elapsed time.Duration `json:"elapsed,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskEvent creates a TaskEvent of the given type for one task.
func NewTaskEvent(runID uuid.UUID, eventType EventType, key, provider string) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		RunID:     runID,
		Type:      eventType,
		Key:       key,
		Provider:  provider,
		CreatedAt: time.Now(),
	}
}

// Terminal reports whether the event ends a task or a run.
func (e *TaskEvent) Terminal() bool {
	switch e.Type {
	case TaskCompleted, TaskFailed, RunCompleted:
		return true
	default:
		return false
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers may be called from several goroutines at once.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// HandlerFunc adapts an ordinary function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent implements EventHandler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the orchestrator to publish progress without direct knowledge
// of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
