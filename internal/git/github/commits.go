package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v80/github"

	"release-notes-drafter/internal/git/shared"
)

// listWindowSHAs lists default-branch commit SHAs in the window, newest first, via REST
func listWindowSHAs(ctx context.Context, client *github.Client, owner, repo string, window shared.Window, maxPages int) ([]string, error) {
	opts := &github.CommitsListOptions{
		Since:       window.Since,
		Until:       window.Until,
		ListOptions: github.ListOptions{Page: 1, PerPage: shared.CommitsPerPage},
	}

	var shas []string
	for pages := 0; pages < maxPages; pages++ {
		commits, resp, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for %s/%s (page %d): %w", owner, repo, opts.Page, upstreamError(err))
		}

		for _, c := range commits {
			shas = append(shas, c.GetSHA())
		}

		if len(commits) < shared.CommitsPerPage || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	slog.Debug("Listed commits in window", "owner", owner, "repo", repo,
		"since", window.Since, "until", window.Until, "commits", len(shas))
	return shas, nil
}
