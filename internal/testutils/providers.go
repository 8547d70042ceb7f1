package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// Default replies of a FakeProviders server.
const (
	DefaultOpenAIText = "openai generated text"
	DefaultGeminiText = "gemini generated text"
)

// FakeProviders serves the OpenAI chat completion endpoint
// (<base>/chat/completions) and the Gemini generateContent endpoint
// (<base>/v1beta/models/<model>:generateContent) from one test server.
// Set OpenAIText and GeminiText before the first call.
type FakeProviders struct {
	OpenAIText string
	GeminiText string

	url string

	mu      sync.Mutex
	status  int
	prompts []string
}

// NewFakeProviders starts a fake provider server closed when the test ends.
func NewFakeProviders(t *testing.T) *FakeProviders {
	t.Helper()

	f := &FakeProviders{
		OpenAIText: DefaultOpenAIText,
		GeminiText: DefaultGeminiText,
		status:     http.StatusOK,
	}
	f.url = CreateTestServer(t, http.HandlerFunc(f.serveHTTP)).URL
	return f
}

// URL is the base URL to configure for both providers.
func (f *FakeProviders) URL() string {
	return f.url
}

// SetStatus makes every subsequent call answer with status and a
// provider-shaped error body. http.StatusOK restores normal replies.
func (f *FakeProviders) SetStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Prompts returns the user prompts received so far, in arrival order.
func (f *FakeProviders) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// Hits returns the number of provider calls received.
func (f *FakeProviders) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *FakeProviders) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	status := f.status
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/chat/completions"):
		f.record(openAIPrompt(body))
		if status != http.StatusOK {
			w.WriteHeader(status)
			writeJSON(w, map[string]any{"error": map[string]any{
				"message": http.StatusText(status),
				"type":    "invalid_request_error",
			}})
			return
		}
		writeJSON(w, map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": f.OpenAIText},
				"finish_reason": "stop",
			}},
		})

	case strings.HasSuffix(r.URL.Path, ":generateContent"):
		f.record(geminiPrompt(body))
		if status != http.StatusOK {
			w.WriteHeader(status)
			writeJSON(w, map[string]any{"error": map[string]any{
				"code":    status,
				"message": http.StatusText(status),
				"status":  geminiStatus(status),
			}})
			return
		}
		writeJSON(w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": f.GeminiText}},
				},
				"finishReason": "STOP",
			}},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]any{"error": map[string]any{
			"code":    http.StatusNotFound,
			"message": "unknown path " + r.URL.Path,
			"status":  "NOT_FOUND",
		}})
	}
}

func (f *FakeProviders) record(prompt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
}

func writeJSON(w io.Writer, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// openAIPrompt extracts the last user message of a chat completion request.
func openAIPrompt(body []byte) string {
	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			return req.Messages[i].Content
		}
	}
	return ""
}

// geminiPrompt joins the text parts of a generateContent request.
func geminiPrompt(body []byte) string {
	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	var parts []string
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "")
}

func geminiStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "PERMISSION_DENIED"
	case http.StatusTooManyRequests:
		return "RESOURCE_EXHAUSTED"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}
