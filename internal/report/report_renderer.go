package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"release-notes-drafter/internal/llm"
	"release-notes-drafter/internal/releases"
)

//go:embed report_template.md
var reportTemplateText string

var reportTemplate *template.Template

func init() {
	reportTemplate = template.Must(
		template.New("report").Funcs(templateFuncs()).Parse(reportTemplateText),
	)
}

// templateFuncs returns all custom template functions
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"bulletList": bulletList,
		"formatDate": formatDate,
	}
}

// Template helper functions

func bulletList(items []string) string {
	if len(items) == 0 {
		return "_None._"
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(strings.ReplaceAll(item, "\n", " "))
	}
	return b.String()
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// Notes is everything the markdown report shows for one release
type Notes struct {
	ID        string
	CreatedAt time.Time
	Title     string
	Repo      string
	RepoURL   string
	Base      string
	Head      string
	DateRange string
	Changes   []string
	Impact    []string
	Risks     []string

	SelectedFiles []string
	DroppedCount  int
	ModelID       string
	GeneratedAt   time.Time
}

// RangeLabel describes the compared range, preferring the human date range
func (n Notes) RangeLabel() string {
	switch {
	case n.DateRange != "":
		return n.DateRange
	case n.Base != "" && n.Head != "":
		return fmt.Sprintf("`%s...%s`", n.Base, n.Head)
	default:
		return ""
	}
}

// Metadata returns the header lines shown under the title
func (n Notes) Metadata() []string {
	var lines []string
	if n.Repo != "" {
		repo := n.Repo
		if n.RepoURL != "" {
			repo = fmt.Sprintf("[%s](%s)", n.Repo, n.RepoURL)
		}
		lines = append(lines, "**Repository:** "+repo)
	}
	if label := n.RangeLabel(); label != "" {
		lines = append(lines, "**Range:** "+label)
	}
	if n.ID != "" {
		lines = append(lines, fmt.Sprintf("**Release ID:** `%s`", n.ID))
	}
	if !n.CreatedAt.IsZero() {
		lines = append(lines, "**Published:** "+formatDate(n.CreatedAt))
	}
	return lines
}

// NotesFromDraft wraps a freshly generated draft
func NotesFromDraft(d llm.Draft) Notes {
	return Notes{
		Title:   d.Title,
		Changes: d.Changes,
		Impact:  d.Impact,
		Risks:   d.Risks,
	}
}

// NotesFromEntry wraps a published release
func NotesFromEntry(e releases.Entry) Notes {
	return Notes{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Title:     e.Title,
		Repo:      e.Repo,
		Base:      e.Base,
		Head:      e.Head,
		DateRange: e.DateRange,
		Changes:   e.Changes,
		Impact:    e.Impact,
		Risks:     e.Risks,
	}
}

// RenderMarkdown renders one or more release notes as a single markdown document
func RenderMarkdown(notes ...Notes) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, notes); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

// RenderReleaseList renders a markdown table of published releases
func RenderReleaseList(entries []releases.Entry) string {
	if len(entries) == 0 {
		return "No releases published yet.\n"
	}

	var b strings.Builder
	b.WriteString("| ID | Published | Title | Repository | Range |\n")
	b.WriteString("|----|-----------|-------|------------|-------|\n")
	for _, e := range entries {
		n := NotesFromEntry(e)
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			e.ID, formatDate(e.CreatedAt), escapePipes(e.Title), escapePipes(e.Repo), escapePipes(n.RangeLabel()))
	}
	return b.String()
}
