package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"release-notes-drafter/internal/config"
	"release-notes-drafter/internal/git/github"
	"release-notes-drafter/internal/git/gitlab"
	"release-notes-drafter/internal/git/types"
	"release-notes-drafter/internal/llm"
	llmerrors "release-notes-drafter/internal/llm/errors"
	"release-notes-drafter/internal/llm/prompts/user"
	"release-notes-drafter/internal/llm/providers"
	"release-notes-drafter/internal/releases"
	"release-notes-drafter/internal/selection"
)

// maxConcurrentDrafts bounds how many repositories DraftAll processes at once
const maxConcurrentDrafts = 4

// ErrModelNotConfigured is returned by Generate when no LLM API key is set
var ErrModelNotConfigured = errors.New("model API key is not set")

// GenerateRequest is the input of a single release-notes generation
type GenerateRequest struct {
	Repo        string             `json:"repo"`
	Base        string             `json:"base"`
	Head        string             `json:"head"`
	IgnoreNoise bool               `json:"ignoreNoise"`
	Commits     []types.Commit     `json:"commits"`
	Files       []types.FileChange `json:"files"`
}

// GenerateResult is a parsed draft plus what was sent to the model
type GenerateResult struct {
	llm.Draft     `yaml:",inline"`
	SelectedFiles []string `json:"selectedFiles" yaml:"selectedFiles"`
	DroppedCount  int      `json:"droppedCount" yaml:"droppedCount"`
	PromptTokens  int      `json:"promptTokens" yaml:"promptTokens"`
}

// DraftResult is the outcome of comparing a repository and drafting notes for it
type DraftResult struct {
	Request    types.CompareRequest `json:"-" yaml:"-"`
	Comparison *types.Comparison    `json:"comparison" yaml:"comparison"`
	Notes      *GenerateResult      `json:"notes" yaml:"notes"`
}

// Drafter wires git providers, patch selection, prompts, the LLM client and the release store
type Drafter struct {
	providers   []types.GitProvider
	llmClient   providers.LLMClient
	store       releases.Store
	config      *config.Config
	countTokens user.TokenCounter
}

func New(ctx context.Context, cfg *config.Config) (*Drafter, error) {
	githubProvider, err := github.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub provider: %w", err)
	}

	gitlabProvider, err := gitlab.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab provider: %w", err)
	}

	llmClient, err := providers.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	store, err := releases.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open release store: %w", err)
	}

	return &Drafter{
		providers:   []types.GitProvider{githubProvider, gitlabProvider},
		llmClient:   llmClient,
		store:       store,
		config:      cfg,
		countTokens: user.NewTokenCounter(cfg.ModelID),
	}, nil
}

// Close releases the store
func (d *Drafter) Close() error {
	return d.store.Close()
}

// ModelID names the model drafts are generated with
func (d *Drafter) ModelID() string {
	return d.config.ModelID
}

// providerFor picks the first git provider that recognizes repo
func (d *Drafter) providerFor(repo string) (types.GitProvider, error) {
	for _, p := range d.providers {
		if p.Supports(repo) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedRepo, repo)
}

// Compare resolves the requested range and returns its commits and file changes
func (d *Drafter) Compare(ctx context.Context, req types.CompareRequest) (*types.Comparison, error) {
	req.Repo = strings.TrimSpace(req.Repo)
	if req.Repo == "" {
		return nil, types.ErrInvalidRepo
	}

	provider, err := d.providerFor(req.Repo)
	if err != nil {
		return nil, err
	}

	slog.Debug("Fetching comparison", "platform", provider.Name(), "repo", req.Repo)

	comparison, err := provider.FetchComparison(ctx, req)
	if err != nil {
		return nil, err
	}

	slog.Info("Fetched comparison",
		"platform", provider.Name(),
		"repo", req.Repo,
		"base", comparison.Base,
		"head", comparison.Head,
		"commit_count", len(comparison.Commits),
		"file_count", len(comparison.Files))

	return comparison, nil
}

// Generate selects patches under the configured budget, prompts the model and parses its draft
func (d *Drafter) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if !d.config.HasModelKey() {
		return nil, fmt.Errorf("%w: set %s", ErrModelNotConfigured, d.config.ModelKeyHint())
	}

	selected := selection.Select(req.Files, selection.Policy{
		IgnoreNoise:   req.IgnoreNoise,
		MaxFiles:      d.config.Selection.MaxFiles,
		MaxPatchChars: d.config.Selection.MaxPatchChars,
	})

	prompt, err := user.RenderUserPrompt(user.NewPromptData(req.Repo, req.Base, req.Head, req.Commits, selected.Selected, selected.DroppedCount))
	if err != nil {
		return nil, fmt.Errorf("failed to render user prompt: %w", err)
	}
	promptTokens := d.countTokens(prompt)

	slog.Info("Generating release notes",
		"provider", d.llmClient.Name(),
		"repo", req.Repo,
		"selected_files", len(selected.Selected),
		"dropped_files", selected.DroppedCount,
		"patch_chars", selected.PatchChars,
		"prompt_tokens", promptTokens)

	raw, err := d.llmClient.Generate(ctx, prompt)
	if err != nil {
		var contextErr *llmerrors.ContextWindowError
		if errors.As(err, &contextErr) {
			slog.Warn("Context window exceeded, lower RND_SELECTION_MAX_PATCH_CHARS",
				"provider", contextErr.Provider,
				"prompt_tokens", promptTokens,
				"max_patch_chars", d.config.Selection.MaxPatchChars)
		}
		return nil, fmt.Errorf("failed to generate release notes: %w", err)
	}

	draft, err := llm.ParseDraft(raw)
	if err != nil {
		return nil, err
	}

	filenames := make([]string, 0, len(selected.Selected))
	for _, f := range selected.Selected {
		filenames = append(filenames, f.Filename)
	}

	return &GenerateResult{
		Draft:         draft,
		SelectedFiles: filenames,
		DroppedCount:  selected.DroppedCount,
		PromptTokens:  promptTokens,
	}, nil
}

// Draft compares one repository and generates release notes for the resolved range
func (d *Drafter) Draft(ctx context.Context, req types.CompareRequest, ignoreNoise bool) (*DraftResult, error) {
	comparison, err := d.Compare(ctx, req)
	if err != nil {
		return nil, err
	}

	notes, err := d.Generate(ctx, GenerateRequest{
		Repo:        displayRepo(comparison, req.Repo),
		Base:        comparison.Base,
		Head:        comparison.Head,
		IgnoreNoise: ignoreNoise,
		Commits:     comparison.Commits,
		Files:       comparison.Files,
	})
	if err != nil {
		return nil, err
	}

	return &DraftResult{Request: req, Comparison: comparison, Notes: notes}, nil
}

// DraftAll drafts several repositories concurrently. Duplicate requests are drafted once;
// results follow the order of first appearance. The first failure cancels the rest.
func (d *Drafter) DraftAll(ctx context.Context, reqs []types.CompareRequest, ignoreNoise bool) ([]*DraftResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("no repositories provided")
	}

	// Deduplicate requests while preserving order
	unique := make([]types.CompareRequest, 0, len(reqs))
	seen := make(map[string]bool)
	for _, req := range reqs {
		req.Repo = strings.TrimSpace(req.Repo)
		key := requestKey(req)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, req)
	}

	if duplicates := len(reqs) - len(unique); duplicates > 0 {
		slog.Debug("Deduplicated repositories", "total", len(reqs), "unique", len(unique), "duplicates_removed", duplicates)
	}

	results := make([]*DraftResult, len(unique))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDrafts)

	for i, req := range unique {
		g.Go(func() error {
			result, err := d.Draft(gCtx, req, ignoreNoise)
			if err != nil {
				return fmt.Errorf("%s: %w", req.Repo, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Publish stores a release note and returns it with its assigned ID
func (d *Drafter) Publish(ctx context.Context, entry releases.Entry) (releases.Entry, error) {
	published, err := d.store.Publish(ctx, entry)
	if err != nil {
		return releases.Entry{}, fmt.Errorf("failed to publish release: %w", err)
	}
	slog.Info("Published release", "id", published.ID, "title", published.Title, "repo", published.Repo)
	return published, nil
}

// PublishDraft stores the notes of a DraftAll/Draft result
func (d *Drafter) PublishDraft(ctx context.Context, result *DraftResult) (releases.Entry, error) {
	return d.Publish(ctx, EntryFromDraft(result, time.Now()))
}

// Releases lists published releases, newest first
func (d *Drafter) Releases(ctx context.Context) ([]releases.Entry, error) {
	return d.store.List(ctx)
}

// Release returns one published release or releases.ErrNotFound
func (d *Drafter) Release(ctx context.Context, id string) (releases.Entry, error) {
	return d.store.Get(ctx, id)
}

// EntryFromDraft builds the release entry for a draft; now anchors relative day windows
func EntryFromDraft(result *DraftResult, now time.Time) releases.Entry {
	entry := releases.Entry{
		DateRange: DateRangeLabel(result.Request, now),
	}
	if c := result.Comparison; c != nil {
		entry.Repo = displayRepo(c, result.Request.Repo)
		entry.Base = c.Base
		entry.Head = c.Head
	}
	if n := result.Notes; n != nil {
		entry.Title = n.Title
		entry.Changes = n.Changes
		entry.Impact = n.Impact
		entry.Risks = n.Risks
	}
	return entry
}

// DateRangeLabel describes the window a request asked for, empty for explicit ref ranges.
// It follows the precedence of shared.PlanRange.
func DateRangeLabel(req types.CompareRequest, now time.Time) string {
	hasBase := strings.TrimSpace(req.Base) != ""
	hasHead := strings.TrimSpace(req.Head) != ""
	until := now.UTC().Format(time.DateOnly)

	switch {
	case hasBase && hasHead:
		return ""
	case req.PreviousTag && hasHead:
		return "since previous tag"
	case req.Days != nil && *req.Days == 0:
		return "all history to " + until
	case req.Days != nil && *req.Days > 0:
		since := now.UTC().AddDate(0, 0, -*req.Days).Format(time.DateOnly)
		return fmt.Sprintf("%s to %s", since, until)
	case req.Since != "" && req.Until != "":
		return fmt.Sprintf("%s to %s", req.Since, req.Until)
	default:
		return ""
	}
}

func displayRepo(c *types.Comparison, fallback string) string {
	if c.Owner != "" && c.Repo != "" {
		return c.Owner + "/" + c.Repo
	}
	return fallback
}

// requestKey identifies a request for deduplication
func requestKey(req types.CompareRequest) string {
	days := ""
	if req.Days != nil {
		days = fmt.Sprint(*req.Days)
	}
	return strings.Join([]string{req.Repo, req.Token, req.Base, req.Head, days, req.Since, req.Until, fmt.Sprint(req.PreviousTag)}, "\x00")
}
