package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"release-notes-drafter/internal/config"
	llmerrors "release-notes-drafter/internal/llm/errors"
	"release-notes-drafter/internal/llm/prompts/system"
	"release-notes-drafter/internal/logger"
)

const claudeProvider = "Claude"

// ClaudeClient calls the Anthropic Messages API
type ClaudeClient struct {
	config *config.Config
	client anthropic.Client
}

func NewClaude(cfg *config.Config) LLMClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.ModelUserKey),
		option.WithHTTPClient(newHTTPClient(cfg)),
		option.WithMaxRetries(0), // paid endpoint, failures surface to the caller
	}
	if cfg.ModelAPI != "" {
		opts = append(opts, option.WithBaseURL(cfg.ModelAPI))
	}

	return &ClaudeClient{
		config: cfg,
		client: anthropic.NewClient(opts...),
	}
}

// Name returns the provider name
func (c *ClaudeClient) Name() string {
	return claudeProvider
}

func (c *ClaudeClient) Generate(ctx context.Context, userPrompt string) (string, error) {
	cfg := c.config

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(cfg.ModelID),
		MaxTokens: int64(cfg.ModelMaxResponseTokens),
		System: []anthropic.TextBlockParam{
			{Text: system.GetSystemPrompt(cfg.SystemPromptVersion)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(cfg.ModelTemperature),
	}

	slog.Log(ctx, logger.LevelTrace, "Claude API request", "request", params)
	slog.Debug("Sending release notes request to LLM", "provider", claudeProvider, "model", cfg.ModelID)

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", llmerrors.Classify(claudeProvider, apiErr.StatusCode, []byte(apiErr.RawJSON()))
		}
		return "", fmt.Errorf("%s request failed: %w", claudeProvider, err)
	}

	slog.Log(ctx, logger.LevelTrace, "Claude API response", "response", message.RawJSON())
	slog.Debug("Claude API token usage",
		"input_tokens", message.Usage.InputTokens,
		"output_tokens", message.Usage.OutputTokens,
		"total_tokens", message.Usage.InputTokens+message.Usage.OutputTokens)

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%s: no content in response", claudeProvider)
	}
	return strings.TrimSpace(text.String()), nil
}
