package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"release-notes-drafter/internal/llm"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"markdown", "json", "yaml"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error")
	}
}

func TestWrite(t *testing.T) {
	draft := llm.Draft{Title: "T", Changes: []string{"a"}, Impact: []string{}, Risks: []string{}}
	render := func() (string, error) { return "# T\n", nil }

	tests := []struct {
		format   Format
		expected string
	}{
		{FormatJSON, "{\n  \"title\": \"T\",\n  \"changes\": [\n    \"a\"\n  ],\n  \"impact\": [],\n  \"risks\": []\n}\n"},
		{FormatYAML, "title: T\nchanges:\n  - a\nimpact: []\nrisks: []\n"},
		{FormatMarkdown, "# T\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.format, draft, render); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("Write() = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestWrite_RenderError(t *testing.T) {
	renderErr := errors.New("boom")
	err := Write(&bytes.Buffer{}, FormatMarkdown, nil, func() (string, error) { return "", renderErr })
	if !errors.Is(err, renderErr) {
		t.Errorf("Write() error = %v, want %v", err, renderErr)
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := renderTerminal("# Heading\n\n- item\n")
	if err != nil {
		t.Fatalf("renderTerminal() error = %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "item") {
		t.Errorf("rendered output lost content:\n%s", out)
	}
}
