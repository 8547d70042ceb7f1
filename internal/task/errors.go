package task

import "errors"

var (
	// ErrRunCancelled is returned by Orchestrator.Run when the caller's
	// context ends before every task finished. It wraps the context error.
	ErrRunCancelled = errors.New("pipeline run cancelled")

	// ErrNoProvider is returned when a task is bound to a provider that was
	// not supplied to the orchestrator.
	ErrNoProvider = errors.New("no provider bound")

	// ErrInvalidTask is returned for malformed task lists and bindings.
	ErrInvalidTask = errors.New("invalid generation task")
)
