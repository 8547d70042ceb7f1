package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskEvent(t *testing.T) {
	runID := uuid.New()

	event := NewTaskEvent(runID, TaskStarted, "notice", "openai")

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, runID, event.RunID)
	assert.Equal(t, TaskStarted, event.Type)
	assert.Equal(t, "notice", event.Key)
	assert.Equal(t, "openai", event.Provider)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)
	assert.NotEqual(t, event.ID, NewTaskEvent(runID, TaskStarted, "notice", "openai").ID)
}

func TestTaskEventJSON(t *testing.T) {
	event := NewTaskEvent(uuid.New(), TaskFailed, "email", "gemini")
	event.Attempt = 3
	event.FailureKind = "rate_limit"

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "task_failed", decoded["type"])
	assert.Equal(t, "email", decoded["key"])
	assert.Equal(t, float64(3), decoded["attempt"])
	assert.Equal(t, "rate_limit", decoded["failure_kind"])
}

func TestTerminal(t *testing.T) {
	tests := map[EventType]bool{
		TaskStarted:   false,
		TaskRetrying:  false,
		TaskCompleted: true,
		TaskFailed:    true,
		RunCompleted:  true,
	}
	for eventType, want := range tests {
		event := &TaskEvent{Type: eventType}
		assert.Equal(t, want, event.Terminal(), eventType)
	}
}

// MockEventHandler is a simple mock implementation of the EventHandler interface
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *TaskEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *TaskEvent
	handler := HandlerFunc(func(ctx context.Context, event *TaskEvent) error {
		got = event
		return errors.New("handled")
	})

	event := NewTaskEvent(uuid.New(), TaskCompleted, "mom", "openai")
	err := handler.HandleEvent(context.Background(), event)

	assert.EqualError(t, err, "handled")
	assert.Same(t, event, got)
}
