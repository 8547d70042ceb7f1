package gemini

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/meetdocs/internal/generation"
)

// Canonical Google API status strings carried in genai.APIError.Status.
const (
	statusUnauthenticated   = "UNAUTHENTICATED"
	statusPermissionDenied  = "PERMISSION_DENIED"
	statusResourceExhausted = "RESOURCE_EXHAUSTED"
	statusUnavailable       = "UNAVAILABLE"
	statusDeadlineExceeded  = "DEADLINE_EXCEEDED"
	statusInternal          = "INTERNAL"
)

// reasonAPIKeyInvalid is reported with HTTP 400 when the key is malformed or
// revoked.
const reasonAPIKeyInvalid = "API_KEY_INVALID"

// classify maps an error returned by Models.GenerateContent onto a provider
// failure kind.
func classify(err error) generation.Kind {
	if apiErr, ok := asAPIError(err); ok {
		return classifyAPIError(apiErr)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return generation.KindNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return generation.KindNetwork
	}

	return generation.KindMalformedResponse
}

// asAPIError extracts a genai.APIError, which the SDK returns by value.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}

	return genai.APIError{}, false
}

func classifyAPIError(apiErr genai.APIError) generation.Kind {
	switch strings.ToUpper(apiErr.Status) {
	case statusUnauthenticated, statusPermissionDenied:
		return generation.KindAuth
	case statusResourceExhausted:
		return generation.KindRateLimit
	case statusUnavailable, statusDeadlineExceeded, statusInternal:
		return generation.KindNetwork
	}

	if hasReason(apiErr, reasonAPIKeyInvalid) {
		return generation.KindAuth
	}

	if apiErr.Code > 0 {
		return generation.KindFromStatus(apiErr.Code)
	}
	return generation.KindMalformedResponse
}

func hasReason(apiErr genai.APIError, reason string) bool {
	for _, detail := range apiErr.Details {
		if r, ok := detail["reason"].(string); ok && r == reason {
			return true
		}
	}
	return false
}
