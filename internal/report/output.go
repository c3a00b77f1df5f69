package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Format selects how command output is written
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// terminalWrapWidth is the word wrap used when rendering markdown for a terminal
const terminalWrapWidth = 100

var validFormats = []Format{FormatMarkdown, FormatJSON, FormatYAML}

// ParseFormat validates an --output value
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(validFormats, f) {
		return "", fmt.Errorf("output must be one of: %v; got: %s", validFormats, s)
	}
	return f, nil
}

// Write encodes value as JSON or YAML, or writes the markdown produced by render.
// Markdown is rendered with glamour when w is a terminal.
func Write(w io.Writer, format Format, value any, render func() (string, error)) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	case FormatMarkdown, "":
		markdown, err := render()
		if err != nil {
			return err
		}
		if isTerminal(w) {
			markdown, err = renderTerminal(markdown)
			if err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, markdown)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func renderTerminal(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWrapWidth),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
