package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"release-notes-drafter/internal/config"
	llmerrors "release-notes-drafter/internal/llm/errors"
	"release-notes-drafter/internal/llm/prompts/system"
	"release-notes-drafter/internal/logger"
)

// OpenAIClient talks to any OpenAI-compatible chat completions API, NVIDIA NIM included
type OpenAIClient struct {
	config   *config.Config
	client   *openai.Client
	provider string
}

// NewOpenAI creates a chat completions client against RND_MODEL_API
func NewOpenAI(cfg *config.Config, provider string) LLMClient {
	clientConfig := openai.DefaultConfig(cfg.ModelUserKey)
	if cfg.ModelAPI != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.ModelAPI, "/")
	}
	clientConfig.HTTPClient = newHTTPClient(cfg)

	return &OpenAIClient{
		config:   cfg,
		client:   openai.NewClientWithConfig(clientConfig),
		provider: provider,
	}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return c.provider
}

func (c *OpenAIClient) Generate(ctx context.Context, userPrompt string) (string, error) {
	cfg := c.config

	req := openai.ChatCompletionRequest{
		Model: cfg.ModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system.GetSystemPrompt(cfg.SystemPromptVersion)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   cfg.ModelMaxResponseTokens,
		Temperature: float32(cfg.ModelTemperature),
	}

	slog.Log(ctx, logger.LevelTrace, "Chat completions request", "provider", c.provider, "request", req)
	slog.Debug("Sending release notes request to LLM", "provider", c.provider, "model", cfg.ModelID)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.classify(err)
	}

	slog.Log(ctx, logger.LevelTrace, "Chat completions response", "provider", c.provider, "response", resp)
	slog.Debug("LLM token usage",
		"provider", c.provider,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"total_tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.provider)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classify maps go-openai errors onto the shared LLM error types
func (c *OpenAIClient) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return llmerrors.Classify(c.provider, apiErr.HTTPStatusCode, []byte(apiErr.Message))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := reqErr.Body
		if len(body) == 0 && reqErr.Err != nil {
			body = []byte(reqErr.Err.Error())
		}
		return llmerrors.Classify(c.provider, reqErr.HTTPStatusCode, body)
	}

	return fmt.Errorf("%s request failed: %w", c.provider, err)
}
