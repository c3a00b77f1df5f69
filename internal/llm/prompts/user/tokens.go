package user

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates the number of tokens a prompt will use
type TokenCounter func(prompt string) int

// NewTokenCounter returns a tiktoken-based counter for model.
// The encoding is resolved on first use; when none can be loaded it falls back to ApproxTokens.
func NewTokenCounter(model string) TokenCounter {
	var (
		once    sync.Once
		encoder *tiktoken.Tiktoken
	)

	return func(prompt string) int {
		once.Do(func() {
			enc, err := tiktoken.EncodingForModel(model)
			if err != nil {
				enc, err = tiktoken.GetEncoding("cl100k_base")
			}
			if err != nil {
				slog.Warn("Token encoding unavailable, using character estimate", "model", model, "error", err)
				return
			}
			encoder = enc
		})

		if encoder == nil {
			return ApproxTokens(prompt)
		}
		return len(encoder.Encode(prompt, nil, nil))
	}
}

// ApproxTokens estimates tokens as one per four characters, rounded up
func ApproxTokens(prompt string) int {
	return (utf8.RuneCountInString(prompt) + 3) / 4
}
