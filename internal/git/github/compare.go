package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v80/github"

	"release-notes-drafter/internal/git/shared"
	"release-notes-drafter/internal/git/types"
)

// fetchComparison fetches base...head with full commit pagination; files come from the first page
func fetchComparison(ctx context.Context, client *github.Client, webBase, owner, repo, base, head string) (*types.Comparison, error) {
	var allCommits []*github.RepositoryCommit
	var files []*github.CommitFile
	opts := &github.ListOptions{Page: 1, PerPage: shared.CommitsPerPage}

	for {
		page, resp, err := client.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comparison from GitHub (page %d, owner=%s, repo=%s, base=%s, head=%s): %w",
				opts.Page, owner, repo, base, head, upstreamError(err))
		}

		if opts.Page == 1 {
			files = page.Files
		}
		allCommits = append(allCommits, page.Commits...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	slog.Debug("Fetched GitHub comparison", "owner", owner, "repo", repo, "commits", len(allCommits), "files", len(files))

	converted := convertFiles(files)
	comparison := &types.Comparison{
		Owner:   owner,
		Repo:    repo,
		RepoURL: fmt.Sprintf("%s/%s/%s", webBase, owner, repo),
		Base:    base,
		Head:    head,
		Commits: make([]types.Commit, 0, len(allCommits)),
		Files:   converted,
		Stats:   shared.CalculateStats(converted),
	}
	for _, commit := range allCommits {
		comparison.Commits = append(comparison.Commits, convertCommit(commit))
	}

	return comparison, nil
}

// convertFiles converts GitHub CommitFiles to platform-agnostic FileChanges
func convertFiles(files []*github.CommitFile) []types.FileChange {
	result := make([]types.FileChange, 0, len(files))
	for _, file := range files {
		if file == nil {
			continue
		}
		result = append(result, types.FileChange{
			Filename:         file.GetFilename(),
			Status:           file.GetStatus(),
			Additions:        file.GetAdditions(),
			Deletions:        file.GetDeletions(),
			Changes:          file.GetChanges(),
			Patch:            file.GetPatch(),
			PreviousFilename: file.GetPreviousFilename(),
		})
	}
	return result
}

// convertCommit keeps the first message line, author name and author date
func convertCommit(commit *github.RepositoryCommit) types.Commit {
	author := commit.GetCommit().GetAuthor()
	return types.Commit{
		SHA:      commit.GetSHA(),
		ShortSHA: shared.ShortSHA(commit.GetSHA()),
		Message:  shared.FirstLine(commit.GetCommit().GetMessage()),
		Author:   author.GetName(),
		Date:     author.GetDate().Time,
	}
}
