package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocuments(at time.Time) []GeneratedDocument {
	return []GeneratedDocument{
		NewSuccessDocument("notice", ProviderOpenAI, "gpt-4o-mini", "Notice body", at),
		NewFailedDocument("email", ProviderGemini, "gemini-1.5-flash", "rate_limit", "quota exceeded", at),
		NewSuccessDocument("mom", ProviderOpenAI, "gpt-4o-mini", "MOM body", at),
		NewSuccessDocument("tasklist", ProviderGemini, "gemini-1.5-flash", "Tasks body", at),
	}
}

func TestNewResultSet(t *testing.T) {
	t.Parallel()

	runID := uuid.New()
	rs, err := NewResultSet(runID, sampleDocuments(time.Now()))
	require.NoError(t, err)

	assert.Equal(t, runID, rs.RunID())
	assert.Equal(t, 4, rs.Len())
	assert.Equal(t, []string{"notice", "email", "mom", "tasklist"}, rs.Keys())

	email, ok := rs.Get("email")
	require.True(t, ok)
	assert.False(t, email.Succeeded())
	assert.Empty(t, email.Content, "failed document must not carry content")
	assert.Equal(t, "rate_limit", email.FailureKind)

	assert.True(t, rs.Succeeded())
	assert.False(t, rs.Complete())
	assert.Len(t, rs.Successful(), 3)
	assert.Len(t, rs.Failed(), 1)
}

func TestNewResultSetRejectsDuplicates(t *testing.T) {
	t.Parallel()

	now := time.Now()
	_, err := NewResultSet(uuid.New(), []GeneratedDocument{
		NewSuccessDocument("notice", ProviderOpenAI, "", "a", now),
		NewSuccessDocument("notice", ProviderOpenAI, "", "b", now),
	})
	assert.ErrorIs(t, err, ErrDuplicateOutputKey)

	_, err = NewResultSet(uuid.New(), []GeneratedDocument{{}})
	assert.ErrorIs(t, err, ErrUnknownOutputKey)
}

func TestResultSetAllFailed(t *testing.T) {
	t.Parallel()

	now := time.Now()
	rs, err := NewResultSet(uuid.New(), []GeneratedDocument{
		NewFailedDocument("notice", ProviderOpenAI, "", "auth", "bad key", now),
		NewFailedDocument("email", ProviderGemini, "", "network", "timeout", now),
	})
	require.NoError(t, err)

	assert.False(t, rs.Succeeded())
	assert.Empty(t, rs.Successful())

	_, err = rs.Lookup("mom")
	assert.ErrorIs(t, err, ErrUnknownOutputKey)

	doc, err := rs.Lookup("email")
	require.NoError(t, err)
	assert.Equal(t, "network", doc.FailureKind)
}

func TestResultSetIterationStopsEarly(t *testing.T) {
	t.Parallel()

	rs, err := NewResultSet(uuid.New(), sampleDocuments(time.Now()))
	require.NoError(t, err)

	var seen []string
	for k := range rs.All() {
		seen = append(seen, k)
		if k == "email" {
			break
		}
	}
	assert.Equal(t, []string{"notice", "email"}, seen)
}

func TestResultSetMarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	rs, err := NewResultSet(uuid.New(), sampleDocuments(time.Date(2024, 2, 25, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	data, err := json.Marshal(rs)
	require.NoError(t, err)

	var decoded struct {
		RunID     string `json:"run_id"`
		Documents []struct {
			Key    string `json:"key"`
			Status string `json:"status"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, rs.RunID().String(), decoded.RunID)
	require.Len(t, decoded.Documents, 4)
	for i, key := range []string{"notice", "email", "mom", "tasklist"} {
		assert.Equal(t, key, decoded.Documents[i].Key)
	}
	assert.Equal(t, "failed", decoded.Documents[1].Status)
}
