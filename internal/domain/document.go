package domain

import "time"

// ProviderID identifies an external text-generation backend.
type ProviderID string

// Supported providers.
const (
	ProviderOpenAI ProviderID = "openai"
	ProviderGemini ProviderID = "gemini"
)

// Valid reports whether p names a known provider.
func (p ProviderID) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

// DocumentStatus is the outcome of one generation task.
type DocumentStatus string

// Possible document status values
const (
	StatusSuccess DocumentStatus = "success"
	StatusFailed  DocumentStatus = "failed"
)

// GeneratedDocument is one task's output plus its provenance. A failed
// document never carries content.
type GeneratedDocument struct {
	Key           string         `json:"key"`
	Content       string         `json:"content,omitempty"`
	Provider      ProviderID     `json:"provider"`
	Model         string         `json:"model,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Status        DocumentStatus `json:"status"`
	FailureKind   string         `json:"failure_kind,omitempty"`
	FailureReason string         `json:"failure_reason,omitempty"`
	Attempts      int            `json:"attempts"`
	Elapsed       time.Duration  `json:"-"`
}

// NewSuccessDocument records generated content for key.
func NewSuccessDocument(key string, provider ProviderID, model, content string, at time.Time) GeneratedDocument {
	return GeneratedDocument{
		Key:         key,
		Content:     content,
		Provider:    provider,
		Model:       model,
		GeneratedAt: at.UTC(),
		Status:      StatusSuccess,
	}
}

// NewFailedDocument records a classified failure for key.
func NewFailedDocument(key string, provider ProviderID, model, kind, reason string, at time.Time) GeneratedDocument {
	return GeneratedDocument{
		Key:           key,
		Provider:      provider,
		Model:         model,
		GeneratedAt:   at.UTC(),
		Status:        StatusFailed,
		FailureKind:   kind,
		FailureReason: reason,
	}
}

// Succeeded reports whether the document holds generated content.
func (d GeneratedDocument) Succeeded() bool {
	return d.Status == StatusSuccess
}
