// Package events carries progress notifications out of a pipeline run.
//
// The orchestrator emits a TaskEvent whenever a task starts, retries,
// completes or fails, and once when the run finishes. Presentation code
// registers handlers to render progress without the orchestrator knowing
// who is listening.
//
// The primary components are:
// - TaskEvent: one progress notification
// - EventHandler: interface for components that react to events
// - EventEmitter: interface for components that publish events
package events
