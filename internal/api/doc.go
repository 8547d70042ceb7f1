// Package api exposes the document pipeline over HTTP. It decodes meeting
// requests, runs the orchestrator, optionally persists the generated
// documents and translates internal errors into safe JSON responses.
package api
