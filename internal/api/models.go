package api

import (
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
	"github.com/phrazzld/meetdocs/internal/task"
)

// DocumentsResponse is the body returned by POST /api/documents.
type DocumentsResponse struct {
	// RunID identifies the pipeline run in logs and in the output directory
	RunID string `json:"run_id"`

	// Complete is true when every task produced a document
	Complete bool `json:"complete"`

	// Documents lists one entry per task in enumeration order
	Documents []domain.GeneratedDocument `json:"documents"`

	// Saved lists the files written when persistence was requested
	Saved []SavedFileResponse `json:"saved,omitempty"`

	// SaveError is a sanitized message set when persistence partly failed
	SaveError string `json:"save_error,omitempty"`
}

// SavedFileResponse describes one persisted document.
type SavedFileResponse struct {
	Key  string `json:"key"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// TaskFailure is the per-task detail reported when no document was produced.
type TaskFailure struct {
	Key      string `json:"key"`
	Provider string `json:"provider"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason"`
}

// TaskResponse describes one configured generation task.
type TaskResponse struct {
	Name       string `json:"name"`
	OutputKey  string `json:"output_key"`
	Provider   string `json:"provider"`
	TemplateID string `json:"template_id"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func documentsToResponse(rs *domain.ResultSet) DocumentsResponse {
	return DocumentsResponse{
		RunID:     rs.RunID().String(),
		Complete:  rs.Complete(),
		Documents: rs.Documents(),
	}
}

func savedToResponse(files []filestore.SavedFile) []SavedFileResponse {
	out := make([]SavedFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, SavedFileResponse{Key: f.Key, Path: f.Path, Size: f.Size})
	}
	return out
}

func failuresFromResultSet(rs *domain.ResultSet) []TaskFailure {
	failed := rs.Failed()
	out := make([]TaskFailure, 0, len(failed))
	for _, d := range failed {
		out = append(out, TaskFailure{
			Key:      d.Key,
			Provider: string(d.Provider),
			Kind:     d.FailureKind,
			Reason:   d.FailureReason,
		})
	}
	return out
}

func tasksToResponse(tasks []task.GenerationTask) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskResponse{
			Name:       t.Name,
			OutputKey:  t.OutputKey,
			Provider:   string(t.Provider),
			TemplateID: t.TemplateID,
		})
	}
	return out
}
