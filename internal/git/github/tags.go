package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v80/github"
)

// maxTagPages bounds previous-tag resolution to 1000 tags
const maxTagPages = 10

func listTags(ctx context.Context, client *github.Client, owner, repo string) ([]string, error) {
	opts := &github.ListOptions{Page: 1, PerPage: 100}

	var names []string
	for pages := 0; pages < maxTagPages; pages++ {
		tags, resp, err := client.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags for %s/%s: %w", owner, repo, upstreamError(err))
		}
		for _, tag := range tags {
			names = append(names, tag.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}
