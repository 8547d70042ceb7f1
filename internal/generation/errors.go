package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/meetdocs/internal/domain"
)

// Kind classifies why a provider call could not produce usable text.
type Kind string

// Provider failure kinds
const (
	KindAuth              Kind = "auth"
	KindRateLimit         Kind = "rate_limit"
	KindNetwork           Kind = "network"
	KindMalformedResponse Kind = "malformed_response"
)

// Sentinel errors matched by ProviderError.Is, one per Kind.
var (
	ErrAuth              = errors.New("provider rejected credentials")
	ErrRateLimit         = errors.New("provider rate limit exceeded")
	ErrNetwork           = errors.New("provider unreachable")
	ErrMalformedResponse = errors.New("invalid response from language model")

	// ErrEmptyPrompt is returned when GenerateText is called with an empty prompt
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidConfig is returned when a provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid provider configuration")
)

var kindSentinels = map[Kind]error{
	KindAuth:              ErrAuth,
	KindRateLimit:         ErrRateLimit,
	KindNetwork:           ErrNetwork,
	KindMalformedResponse: ErrMalformedResponse,
}

// ProviderError is a classified failure of one provider call.
type ProviderError struct {
	Provider domain.ProviderID
	Kind     Kind
	Err      error
}

// NewProviderError wraps err with a provider and a classification.
func NewProviderError(provider domain.ProviderID, kind Kind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error's Kind.
func (e *ProviderError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Retryable reports whether a later attempt might succeed.
func (e *ProviderError) Retryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindNetwork
}

// KindOf extracts the Kind of a provider failure. Deadline expiry that was
// not classified by an adapter counts as a network failure; anything else
// unclassified is reported as a malformed response.
func KindOf(err error) Kind {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindMalformedResponse
}

// KindFromStatus maps an HTTP status code to a Kind. Codes outside the
// documented classes fall back to MalformedResponse.
func KindFromStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 429:
		return KindRateLimit
	case status == 408 || status >= 500:
		return KindNetwork
	default:
		return KindMalformedResponse
	}
}
