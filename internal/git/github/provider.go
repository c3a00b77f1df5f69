package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"release-notes-drafter/internal/config"
	"release-notes-drafter/internal/git/shared"
	"release-notes-drafter/internal/git/types"
	httpclient "release-notes-drafter/internal/http"
)

// Provider implements types.GitProvider for GitHub and GitHub Enterprise
type Provider struct {
	config     *config.Config
	httpClient *http.Client
	clients    *clients
	cache      *shared.CompareCache
	now        func() time.Time
}

// NewProvider creates a GitHub provider authenticated with the configured token.
// Date windows use GraphQL history when RND_GITHUB_USE_GRAPHQL=true, otherwise REST.
func NewProvider(cfg *config.Config) (*Provider, error) {
	httpClient := httpclient.NewHTTPClient(httpclient.HTTPClientOptions{
		Timeout:   60 * time.Second,
		UserAgent: httpclient.DefaultUserAgent,
	})
	return newProvider(cfg, httpClient)
}

func newProvider(cfg *config.Config, httpClient *http.Client) (*Provider, error) {
	c, err := newClients(httpClient, cfg.GitHubToken, cfg.GitHubAPIURL)
	if err != nil {
		return nil, err
	}

	if cfg.GitHubUseGraphQL {
		slog.Info("Using GitHub GraphQL API for commit history")
	} else {
		slog.Debug("Using GitHub REST API for commit history")
	}

	return &Provider{
		config:     cfg,
		httpClient: httpClient,
		clients:    c,
		cache:      shared.NewCompareCache(cfg.CompareCacheSize, time.Duration(cfg.CompareCacheTTLSeconds)*time.Second),
		now:        time.Now,
	}, nil
}

// Name returns the platform name
func (p *Provider) Name() string {
	return providerName
}

// Supports accepts github.com URLs, URLs on the configured Enterprise host, and bare owner/repo
func (p *Provider) Supports(repo string) bool {
	if _, _, err := ParseRepo(repo); err != nil {
		return false
	}
	switch host := repoHost(repo); host {
	case "":
		return true
	case "github.com", "www.github.com":
		return true
	default:
		return host == webHost(p.config.GitHubAPIURL)
	}
}

// FetchComparison resolves the requested range and fetches the comparison
func (p *Provider) FetchComparison(ctx context.Context, req types.CompareRequest) (*types.Comparison, error) {
	owner, repo, err := ParseRepo(req.Repo)
	if err != nil {
		return nil, err
	}

	// a compare URL carries its own range unless the request overrides it
	if o, r, base, head, err := ParseCompareURL(strings.TrimSpace(req.Repo)); err == nil {
		owner, repo = o, r
		if req.Base == "" && req.Head == "" {
			req.Base, req.Head = base, head
		}
	}

	plan, err := shared.PlanRange(req, p.now())
	if err != nil {
		return nil, err
	}

	c := p.clients
	useCache := true
	if token := strings.TrimSpace(req.Token); token != "" {
		c, err = newClients(p.httpClient, token, p.config.GitHubAPIURL)
		if err != nil {
			return nil, err
		}
		useCache = false
	}

	base, head, err := p.resolve(ctx, c, owner, repo, plan)
	if err != nil {
		return nil, err
	}

	slog.Debug("Resolved GitHub range", "owner", owner, "repo", repo, "base", base, "head", head)

	fetch := func(ctx context.Context) (*types.Comparison, error) {
		return fetchComparison(ctx, c.rest, webBaseURL(p.config.GitHubAPIURL), owner, repo, base, head)
	}
	if !useCache {
		return fetch(ctx)
	}
	return p.cache.GetOrFetch(ctx, shared.CompareCacheKey(providerName, owner+"/"+repo, base, head), fetch)
}

// resolve turns a range plan into concrete base and head refs
func (p *Provider) resolve(ctx context.Context, c *clients, owner, repo string, plan shared.RangePlan) (base, head string, err error) {
	switch plan.Kind {
	case shared.RangeExplicit:
		return plan.Base, plan.Head, nil

	case shared.RangePreviousTag:
		tags, err := listTags(ctx, c.rest, owner, repo)
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

		var shas []string
		if p.config.GitHubUseGraphQL {
			shas, err = listWindowSHAsGraphQL(ctx, c.graphql, owner, repo, plan.Window, maxPages)
		} else {
			shas, err = listWindowSHAs(ctx, c.rest, owner, repo, plan.Window, maxPages)
		}
		if err != nil {
			return "", "", err
		}
		return shared.EndpointsFromNewestFirst(shas)

	default:
		return "", "", fmt.Errorf("unknown range kind %d", plan.Kind)
	}
}
