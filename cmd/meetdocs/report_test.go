package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/events"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	at := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)

	notice := domain.NewSuccessDocument("notice", domain.ProviderOpenAI, "gpt-4o-mini", "Notice body", at)
	notice.Attempts = 3
	notice.Elapsed = 1500 * time.Millisecond
	email := domain.NewFailedDocument("email", domain.ProviderGemini, "gemini-1.5-flash", "rate_limit", "quota exhausted", at)

	rs, err := domain.NewResultSet(uuid.New(), []domain.GeneratedDocument{notice, email})
	require.NoError(t, err)

	var buf bytes.Buffer
	writeReport(&buf, rs, 2*time.Second)
	out := buf.String()

	assert.Contains(t, out, rs.RunID().String())
	assert.Contains(t, out, "NOTICE (openai, 3rd attempt, 1.5s)")
	assert.Contains(t, out, "Notice body")
	assert.Contains(t, out, "1 of 2 tasks failed")
	assert.Contains(t, out, "email (gemini, rate_limit): quota exhausted")
	assert.NotContains(t, out, "EMAIL")
}

func TestWriteSaved(t *testing.T) {
	var buf bytes.Buffer
	writeSaved(&buf, "out", []filestore.SavedFile{
		{Key: "notice", Path: "out/notice.txt", Size: 1200},
		{Key: "mom", Path: "out/mom.txt", Size: 800},
	})

	out := buf.String()
	assert.Contains(t, out, "Saved 2 documents (2.0 kB) to out")
	assert.Contains(t, out, "out/notice.txt  1.2 kB")
	assert.Contains(t, out, "out/mom.txt  800 B")
}

func TestWriteSavedNothing(t *testing.T) {
	var buf bytes.Buffer
	writeSaved(&buf, "out", nil)
	assert.Empty(t, buf.String())
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf)
	runID := uuid.New()

	started := events.NewTaskEvent(runID, events.TaskStarted, "notice", "openai")
	retrying := events.NewTaskEvent(runID, events.TaskRetrying, "notice", "openai")
	retrying.Attempt = 1
	retrying.FailureKind = "rate_limit"
	done := events.NewTaskEvent(runID, events.TaskCompleted, "notice", "openai")
	done.Elapsed = 1200 * time.Millisecond
	failed := events.NewTaskEvent(runID, events.TaskFailed, "email", "gemini")
	failed.FailureKind = "auth"

	for _, e := range []*events.TaskEvent{started, retrying, done, failed, events.NewTaskEvent(runID, events.RunCompleted, "", "")} {
		require.NoError(t, p.HandleEvent(context.Background(), e))
	}

	assert.Equal(t, "  ... notice (openai)\n"+
		"  ~ notice (openai) attempt 1 failed: rate_limit, retrying\n"+
		"  ok notice (openai) in 1.2s\n"+
		"  FAILED email (gemini): auth\n", buf.String())
}
