package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"release-notes-drafter/internal/config"
	"release-notes-drafter/internal/git/shared"
	"release-notes-drafter/internal/git/types"
)

// Provider implements types.GitProvider for a GitLab instance
type Provider struct {
	config     *config.Config
	httpClient *http.Client
	client     *gitlab.Client
	cache      *shared.CompareCache
	now        func() time.Time
}

// NewProvider creates a GitLab provider for RND_GITLAB_BASE_URL (gitlab.com by default)
func NewProvider(cfg *config.Config) (*Provider, error) {
	return newProvider(cfg, NewHTTPClient(cfg))
}

func newProvider(cfg *config.Config, httpClient *http.Client) (*Provider, error) {
	client, err := NewClient(httpClient, cfg.GitLabBaseURL, cfg.GitLabToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	return &Provider{
		config:     cfg,
		httpClient: httpClient,
		client:     client,
		cache:      shared.NewCompareCache(cfg.CompareCacheSize, time.Duration(cfg.CompareCacheTTLSeconds)*time.Second),
		now:        time.Now,
	}, nil
}

// Name returns the platform name
func (p *Provider) Name() string {
	return providerName
}

// Supports accepts project URLs on the configured GitLab host
func (p *Provider) Supports(repo string) bool {
	project, err := ParseProject(repo)
	if err != nil {
		return false
	}
	return project.Host == instanceHost(p.config.GitLabBaseURL)
}

// FetchComparison resolves the requested range and fetches the comparison
func (p *Provider) FetchComparison(ctx context.Context, req types.CompareRequest) (*types.Comparison, error) {
	project, err := ParseProject(req.Repo)
	if err != nil {
		return nil, err
	}

	if base, head, ok := parseCompareURL(strings.TrimSpace(req.Repo)); ok && req.Base == "" && req.Head == "" {
		req.Base, req.Head = base, head
	}

	plan, err := shared.PlanRange(req, p.now())
	if err != nil {
		return nil, err
	}

	client := p.client
	useCache := true
	if token := strings.TrimSpace(req.Token); token != "" {
		client, err = NewClient(p.httpClient, p.config.GitLabBaseURL, token)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab client: %w", err)
		}
		useCache = false
	}

	base, head, err := p.resolve(ctx, client, project, plan)
	if err != nil {
		return nil, err
	}

	slog.Debug("Resolved GitLab range", "project", project.Path, "base", base, "head", head)

	fetch := func(ctx context.Context) (*types.Comparison, error) {
		return fetchComparison(ctx, client, project, base, head)
	}
	if !useCache {
		return fetch(ctx)
	}
	return p.cache.GetOrFetch(ctx, shared.CompareCacheKey(providerName, project.Host+"/"+project.Path, base, head), fetch)
}

// resolve turns a range plan into concrete base and head refs
func (p *Provider) resolve(ctx context.Context, client *gitlab.Client, project Project, plan shared.RangePlan) (base, head string, err error) {
	switch plan.Kind {
	case shared.RangeExplicit:
		return plan.Base, plan.Head, nil

	case shared.RangePreviousTag:
		tags, err := listTags(ctx, client, project)
		if err != nil {
			return "", "", err
		}
		base, err := shared.PreviousSemverTag(plan.Head, tags)
		if err != nil {
			return "", "", err
		}
		return base, plan.Head, nil

	case shared.RangeWindow:
		maxPages := p.config.MaxCommitPages
		if maxPages <= 0 {
			maxPages = shared.DefaultMaxCommitPages
		}
		shas, err := listWindowSHAs(ctx, client, project, plan.Window, maxPages)
		if err != nil {
			return "", "", err
		}
		return shared.EndpointsFromNewestFirst(shas)

	default:
		return "", "", fmt.Errorf("unknown range kind %d", plan.Kind)
	}
}
