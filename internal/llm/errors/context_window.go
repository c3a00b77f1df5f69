package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ContextWindowError represents an error when the LLM's context window is exceeded
type ContextWindowError struct {
	StatusCode int
	Message    string
	Provider   string
}

func (e *ContextWindowError) Error() string {
	return fmt.Sprintf("context window exceeded for %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// APIError is a non-success LLM response that is not a context window error
type APIError struct {
	StatusCode int
	Message    string
	Provider   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// contextWindowIndicators are lower-case fragments providers use when a prompt is too large
var contextWindowIndicators = []string{
	"context length",
	"context window",
	"token limit",
	"maximum context",
	"input too large",
	"prompt is too long",
	"prompt too long",
	"maximum tokens",
	"exceeds maximum",
	"too many tokens",
	"input token count",
}

// IsContextWindowError checks if an HTTP response indicates a context window error
func IsContextWindowError(statusCode int, body []byte) bool {
	// Check status codes that typically indicate payload/context issues
	if statusCode != http.StatusBadRequest && statusCode != http.StatusRequestEntityTooLarge && statusCode != http.StatusTooManyRequests {
		return false
	}

	bodyStr := strings.ToLower(string(body))
	for _, indicator := range contextWindowIndicators {
		if strings.Contains(bodyStr, indicator) {
			return true
		}
	}

	return false
}

// Classify turns a failed provider response into a ContextWindowError or an APIError
func Classify(provider string, statusCode int, body []byte) error {
	if IsContextWindowError(statusCode, body) {
		return &ContextWindowError{
			StatusCode: statusCode,
			Message:    string(body),
			Provider:   provider,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
		Provider:   provider,
	}
}
