package api

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/phrazzld/meetdocs/internal/api/shared"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
	"github.com/phrazzld/meetdocs/internal/task"
)

// Pipeline runs every configured generation task for one meeting.
type Pipeline interface {
	Run(ctx context.Context, req domain.MeetingRequest) (*domain.ResultSet, error)
	Tasks() []task.GenerationTask
}

// Saver persists the successful documents of a result set.
type Saver interface {
	Save(ctx context.Context, rs *domain.ResultSet, dir string) ([]filestore.SavedFile, error)
}

// DocumentHandler handles document generation HTTP requests.
type DocumentHandler struct {
	pipeline  Pipeline
	saver     Saver
	outputDir string
	logger    *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler. Saved runs are written to
// a per-run subdirectory of outputDir. saver may be nil, in which case save
// requests are rejected.
func NewDocumentHandler(pipeline Pipeline, saver Saver, outputDir string, logger *slog.Logger) *DocumentHandler {
	if pipeline == nil {
		panic("pipeline cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentHandler{
		pipeline:  pipeline,
		saver:     saver,
		outputDir: outputDir,
		logger:    logger.With("component", "document_handler"),
	}
}

// GenerateDocuments handles POST /api/documents requests.
//
// The body is a MeetingInput. With ?save=true the successful documents are
// also written to disk. A run where every task failed answers 502 with the
// per-task failures; a partial run answers 200 with the failed documents
// marked in the list.
func (h *DocumentHandler) GenerateDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With("trace_id", shared.GetTraceID(ctx))

	var in domain.MeetingInput
	if err := shared.DecodeJSON(w, r, &in); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	req, err := domain.NewMeetingRequest(in)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
			shared.WithDetails(validationDetails(err)))
		return
	}

	save := shared.QueryBool(r, "save")
	if save && h.saver == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Saving documents is not enabled")
		return
	}

	rs, err := h.pipeline.Run(ctx, req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
			shared.WithDetails(validationDetails(err)))
		return
	}

	if !rs.Succeeded() {
		log.Warn("no document generated", "run_id", rs.RunID())
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(ErrAllTasksFailed),
			GetSafeErrorMessage(ErrAllTasksFailed), ErrAllTasksFailed,
			shared.WithDetails(failuresFromResultSet(rs)))
		return
	}

	response := documentsToResponse(rs)

	if save {
		dir := filepath.Join(h.outputDir, rs.RunID().String())
		saved, err := h.saver.Save(ctx, rs, dir)
		response.Saved = savedToResponse(saved)
		if err != nil {
			// The documents were generated; report the save failure alongside them.
			log.Error("failed to save documents", "run_id", rs.RunID(), "dir", dir, "error", err)
			response.SaveError = GetSafeErrorMessage(err)
		}
	}

	log.Info("documents generated",
		"run_id", rs.RunID(),
		"succeeded", len(rs.Successful()),
		"failed", len(rs.Failed()),
		"saved", len(response.Saved))

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ListTasks handles GET /api/tasks requests.
func (h *DocumentHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(h.pipeline.Tasks()))
}
