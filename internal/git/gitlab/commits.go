package gitlab

import (
	"context"
	"fmt"
	"log/slog"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"release-notes-drafter/internal/git/shared"
)

// listWindowSHAs lists default-branch commit SHAs in the window, newest first
func listWindowSHAs(ctx context.Context, client *gitlab.Client, project Project, window shared.Window, maxPages int) ([]string, error) {
	since, until := window.Since, window.Until
	opts := &gitlab.ListCommitsOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: shared.CommitsPerPage,
			Page:    1,
		},
		Since: &since,
		Until: &until,
	}

	var shas []string
	for pages := 0; pages < maxPages; pages++ {
		commits, resp, err := client.Commits.ListCommits(project.Path, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for %s: %w", project.Path, upstreamError(err))
		}

		for _, c := range commits {
			shas = append(shas, c.ID)
		}

		if len(commits) < shared.CommitsPerPage || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	slog.Debug("Listed GitLab commits in window", "project", project.Path, "commits", len(shas))
	return shas, nil
}

// maxTagPages bounds previous-tag resolution to 1000 tags
const maxTagPages = 10

func listTags(ctx context.Context, client *gitlab.Client, project Project) ([]string, error) {
	opts := &gitlab.ListTagsOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: 100,
			Page:    1,
		},
	}

	var names []string
	for pages := 0; pages < maxTagPages; pages++ {
		tags, resp, err := client.Tags.ListTags(project.Path, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list tags for %s: %w", project.Path, upstreamError(err))
		}
		for _, tag := range tags {
			names = append(names, tag.Name)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}
