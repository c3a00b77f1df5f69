package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/genai"

	"release-notes-drafter/internal/config"
	llmerrors "release-notes-drafter/internal/llm/errors"
	"release-notes-drafter/internal/llm/prompts/system"
	"release-notes-drafter/internal/logger"
)

const geminiProvider = "Gemini"

// GeminiClient calls the Gemini API GenerateContent endpoint
type GeminiClient struct {
	config *config.Config

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGemini(cfg *config.Config) LLMClient {
	return &GeminiClient{config: cfg}
}

// Name returns the provider name
func (g *GeminiClient) Name() string {
	return geminiProvider
}

// genaiClient creates the SDK client on first use; construction needs a context
func (g *GeminiClient) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:     g.config.ModelUserKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: newHTTPClient(g.config),
		}
		if g.config.ModelAPI != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.config.ModelAPI}
		}
		g.client, g.initErr = genai.NewClient(ctx, cc)
	})
	return g.client, g.initErr
}

func (g *GeminiClient) Generate(ctx context.Context, userPrompt string) (string, error) {
	cfg := g.config

	client, err := g.genaiClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create %s client: %w", geminiProvider, err)
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system.GetSystemPrompt(cfg.SystemPromptVersion), genai.RoleUser),
		MaxOutputTokens:   int32(cfg.ModelMaxResponseTokens),
		Temperature:       genai.Ptr(float32(cfg.ModelTemperature)),
	}

	slog.Log(ctx, logger.LevelTrace, "Gemini API request", "prompt", userPrompt)
	slog.Debug("Sending release notes request to LLM", "provider", geminiProvider, "model", cfg.ModelID)

	resp, err := client.Models.GenerateContent(ctx, cfg.ModelID, genai.Text(userPrompt), genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", llmerrors.Classify(geminiProvider, apiErr.Code, []byte(apiErr.Message))
		}
		return "", fmt.Errorf("%s request failed: %w", geminiProvider, err)
	}

	if usage := resp.UsageMetadata; usage != nil {
		slog.Debug("Gemini API token usage",
			"input_tokens", usage.PromptTokenCount,
			"output_tokens", usage.CandidatesTokenCount,
			"total_tokens", usage.TotalTokenCount)
	}

	text := strings.TrimSpace(resp.Text())
	slog.Log(ctx, logger.LevelTrace, "Gemini API response", "response", text)
	if text == "" {
		return "", fmt.Errorf("%s: no content in response", geminiProvider)
	}
	return text, nil
}
