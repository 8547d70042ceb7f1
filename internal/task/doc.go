// Package task runs the document pipeline. A fixed list of generation tasks
// binds each output document to a provider and a prompt template; the
// Orchestrator renders every prompt, dispatches the tasks concurrently with
// per-call timeouts and retries, isolates failures per task and assembles
// the results in declaration order.
package task
