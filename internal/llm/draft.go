package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultTitle is used when the model omits a title
const DefaultTitle = "Release"

// rawPreviewChars bounds how much of an unparseable reply is echoed back in errors
const rawPreviewChars = 200

var (
	ErrEmptyResponse = errors.New("empty response from LLM")
	ErrInvalidJSON   = errors.New("LLM did not return valid JSON")
	ErrNotObject     = errors.New("LLM response is not an object")
)

// fencedBlockRegex matches the first fenced code block, with or without a json tag
var fencedBlockRegex = regexp.MustCompile("```(?:json)?\\s*((?s).*?)```")

// Draft is the structured release note returned by the model
type Draft struct {
	Title   string   `json:"title" yaml:"title"`
	Changes []string `json:"changes" yaml:"changes"`
	Impact  []string `json:"impact" yaml:"impact"`
	Risks   []string `json:"risks" yaml:"risks"`
}

// ParseDraft extracts a Draft from raw model output.
// A fenced code block takes precedence over the surrounding text.
func ParseDraft(raw string) (Draft, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Draft{}, ErrEmptyResponse
	}

	payload := raw
	if m := fencedBlockRegex.FindStringSubmatch(raw); m != nil {
		payload = strings.TrimSpace(m[1])
	}

	var parsed any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return Draft{}, fmt.Errorf("%w. Raw: %s", ErrInvalidJSON, preview(raw))
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return Draft{}, ErrNotObject
	}

	draft := Draft{
		Title:   DefaultTitle,
		Changes: stringList(obj["changes"]),
		Impact:  stringList(obj["impact"]),
		Risks:   stringList(obj["risks"]),
	}
	if title, ok := obj["title"].(string); ok && strings.TrimSpace(title) != "" {
		draft.Title = strings.TrimSpace(title)
	}

	return draft, nil
}

// stringList keeps the trimmed, non-empty string elements of a JSON array
func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func preview(raw string) string {
	runes := []rune(raw)
	if len(runes) <= rawPreviewChars {
		return raw
	}
	return string(runes[:rawPreviewChars])
}
