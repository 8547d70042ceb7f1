package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/meetdocs/internal/api/shared"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
	"github.com/phrazzld/meetdocs/internal/prompt"
	"github.com/phrazzld/meetdocs/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Fields: []domain.FieldError{{Field: "agenda", Reason: "is required"}}}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("build: %w", domain.ErrValidation), http.StatusBadRequest},
		{"invalid body", fmt.Errorf("%w: eof", shared.ErrInvalidBody), http.StatusBadRequest},
		{"all failed", ErrAllTasksFailed, http.StatusBadGateway},
		{"cancelled", fmt.Errorf("%w: %w", task.ErrRunCancelled, errors.New("context canceled")), http.StatusServiceUnavailable},
		{"template", prompt.ErrUnknownTemplate, http.StatusInternalServerError},
		{"persistence", &filestore.PersistenceError{Key: "notice", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"validation", domain.ErrValidation, "Invalid meeting request"},
		{"invalid body", shared.ErrInvalidBody, "Invalid request format"},
		{"all failed", ErrAllTasksFailed, "No document could be generated"},
		{"cancelled", task.ErrRunCancelled, "Document generation was cancelled"},
		{"template", fmt.Errorf("%w: mom.tmpl", prompt.ErrInvalidTemplate), "Prompt templates are misconfigured"},
		{"persistence", &filestore.PersistenceError{Key: "email", Err: errors.New("/secret/path denied")}, "Failed to save documents"},
		{"unknown leaks nothing", errors.New("api_key=sk-proj-0123456789abcdef0123"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestValidationDetails(t *testing.T) {
	err := fmt.Errorf("run: %w", &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "date", Reason: "is required"},
		{Field: "agenda", Reason: "is required"},
	}})

	assert.Equal(t, map[string]string{"date": "is required", "agenda": "is required"}, validationDetails(err))
	assert.Nil(t, validationDetails(errors.New("other")))
	assert.Nil(t, validationDetails(&domain.ValidationError{}))
}
