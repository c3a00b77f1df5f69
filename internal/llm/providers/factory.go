package providers

import (
	"fmt"

	"release-notes-drafter/internal/config"
)

// NewClient creates the appropriate LLM client based on configuration
func NewClient(cfg *config.Config) (LLMClient, error) {
	switch cfg.ModelProvider {
	case "nim":
		return NewOpenAI(cfg, "NIM"), nil

	case "openai":
		return NewOpenAI(cfg, "OpenAI"), nil

	case "claude":
		return NewClaude(cfg), nil

	case "gemini":
		return NewGemini(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.ModelProvider)
	}
}
