package user

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"release-notes-drafter/internal/git/types"
)

//go:embed user_prompt_template_v1.md
var userPromptTemplateV1 string

var userPromptTemplate *template.Template

func init() {
	userPromptTemplate = template.Must(
		template.New("user_prompt").Parse(userPromptTemplateV1),
	)
}

// PromptData holds the data for the user prompt template
type PromptData struct {
	Repo         string
	Base         string
	Head         string
	CommitTitles []string
	Files        []types.FileChange // selected files, in admission order
	DroppedCount int
}

// NewPromptData collects commit titles and selected files for rendering
func NewPromptData(repo, base, head string, commits []types.Commit, selected []types.FileChange, dropped int) PromptData {
	titles := make([]string, 0, len(commits))
	for _, c := range commits {
		titles = append(titles, c.Message)
	}
	return PromptData{
		Repo:         repo,
		Base:         base,
		Head:         head,
		CommitTitles: titles,
		Files:        selected,
		DroppedCount: dropped,
	}
}

// RenderUserPrompt formats the drafting prompt from the repository context and selected patches
func RenderUserPrompt(data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := userPromptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute user prompt template: %w", err)
	}
	return buf.String(), nil
}
