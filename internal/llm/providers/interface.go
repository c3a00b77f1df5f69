package providers

import "context"

// LLMClient interface for all LLM providers
type LLMClient interface {
	// Generate sends the user prompt, with the configured system prompt, and returns the raw reply text
	Generate(ctx context.Context, userPrompt string) (string, error)

	// Name returns the provider name used in logs and errors
	Name() string
}
