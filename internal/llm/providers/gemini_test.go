package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"release-notes-drafter/internal/config"
	llmerrors "release-notes-drafter/internal/llm/errors"
)

func newGeminiTestConfig(url string) *config.Config {
	return &config.Config{
		ModelAPI:               url,
		ModelID:                "gemini-test",
		ModelUserKey:           "test-key",
		ModelTimeoutSeconds:    30,
		ModelMaxResponseTokens: 1000,
		ModelTemperature:       0.3,
		SystemPromptVersion:    "v1",
	}
}

func TestGeminiGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"title\": \"Gemini notes\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15}
		}`))
	}))
	defer server.Close()

	result, err := NewGemini(newGeminiTestConfig(server.URL)).Generate(t.Context(), "test prompt")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if result != `{"title": "Gemini notes"}` {
		t.Errorf("Generate() result = %q", result)
	}
}

func TestGeminiGenerate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := NewGemini(newGeminiTestConfig(server.URL)).Generate(t.Context(), "test prompt")
	if err == nil || !strings.Contains(err.Error(), "no content in response") {
		t.Errorf("Generate() error = %v, want 'no content in response'", err)
	}
}

func TestGeminiGenerate_ContextWindowError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"The input token count (1200000) exceeds the maximum number of tokens allowed (1048576).","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	_, err := NewGemini(newGeminiTestConfig(server.URL)).Generate(t.Context(), "test prompt")

	var contextErr *llmerrors.ContextWindowError
	if !errors.As(err, &contextErr) {
		t.Fatalf("Generate() error type = %T (%v), want *llmerrors.ContextWindowError", err, err)
	}
	if contextErr.Provider != "Gemini" {
		t.Errorf("Provider = %q, want Gemini", contextErr.Provider)
	}
}
