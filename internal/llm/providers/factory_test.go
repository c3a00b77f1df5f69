package providers

import (
	"fmt"
	"testing"

	"release-notes-drafter/internal/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		expectError bool
		expectType  string
		expectName  string
	}{
		{name: "nim provider", provider: "nim", expectType: "*providers.OpenAIClient", expectName: "NIM"},
		{name: "openai provider", provider: "openai", expectType: "*providers.OpenAIClient", expectName: "OpenAI"},
		{name: "claude provider", provider: "claude", expectType: "*providers.ClaudeClient", expectName: "Claude"},
		{name: "gemini provider", provider: "gemini", expectType: "*providers.GeminiClient", expectName: "Gemini"},
		{name: "removed provider", provider: "llama", expectError: true},
		{name: "empty provider", provider: "", expectError: true},
		{name: "invalid provider", provider: "invalid-provider-123", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				ModelProvider:       tt.provider,
				ModelID:             "test-model",
				ModelUserKey:        "test-key",
				ModelTimeoutSeconds: 30,
			}

			client, err := NewClient(cfg)

			if tt.expectError {
				if err == nil {
					t.Errorf("NewClient() expected error for provider %q, got nil", tt.provider)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewClient() unexpected error: %v", err)
			}
			if got := fmt.Sprintf("%T", client); got != tt.expectType {
				t.Errorf("NewClient() type = %s, want %s", got, tt.expectType)
			}
			if client.Name() != tt.expectName {
				t.Errorf("Name() = %q, want %q", client.Name(), tt.expectName)
			}
		})
	}
}
