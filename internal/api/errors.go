package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/meetdocs/internal/api/shared"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
	"github.com/phrazzld/meetdocs/internal/prompt"
	"github.com/phrazzld/meetdocs/internal/task"
)

// ErrAllTasksFailed is returned when a run completes without producing any
// document.
var ErrAllTasksFailed = errors.New("all generation tasks failed")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidBody):
		return http.StatusBadRequest

	case errors.Is(err, ErrAllTasksFailed):
		return http.StatusBadGateway

	case errors.Is(err, task.ErrRunCancelled):
		return http.StatusServiceUnavailable

	// Template and persistence faults fall through to 500.
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Invalid meeting request"
	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request format"
	case errors.Is(err, ErrAllTasksFailed):
		return "No document could be generated"
	case errors.Is(err, task.ErrRunCancelled):
		return "Document generation was cancelled"
	case errors.Is(err, prompt.ErrUnknownTemplate),
		errors.Is(err, prompt.ErrInvalidTemplate):
		return "Prompt templates are misconfigured"
	case errors.Is(err, filestore.ErrPersistence):
		return "Failed to save documents"
	default:
		return "An unexpected error occurred"
	}
}

// validationDetails lists the invalid fields of a validation error keyed by
// JSON field name. It returns nil for any other error.
func validationDetails(err error) map[string]string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return nil
	}

	details := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		details[f.Field] = f.Reason
	}
	return details
}
