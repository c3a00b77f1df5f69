package gitlab

import (
	"context"
	"fmt"
	"log/slog"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"release-notes-drafter/internal/git/shared"
	"release-notes-drafter/internal/git/types"
)

// fetchComparison fetches a three-dot comparison of base...head
func fetchComparison(ctx context.Context, client *gitlab.Client, project Project, base, head string) (*types.Comparison, error) {
	compareOpts := &gitlab.CompareOptions{
		From:     &base,
		To:       &head,
		Straight: gitlab.Ptr(false), // Use three-dot comparison (like GitHub)
	}
	compare, _, err := client.Repositories.Compare(project.Path, compareOpts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comparison from GitLab (project=%s, base=%s, head=%s): %w",
			project.Path, base, head, upstreamError(err))
	}

	slog.Debug("GitLab comparison fetched", "project", project.Path, "commits", len(compare.Commits), "diffs", len(compare.Diffs))

	files := convertDiffs(compare.Diffs)
	comparison := &types.Comparison{
		Owner:   project.namespace(),
		Repo:    project.name(),
		RepoURL: fmt.Sprintf("https://%s/%s", project.Host, project.Path),
		Base:    base,
		Head:    head,
		Commits: make([]types.Commit, 0, len(compare.Commits)),
		Files:   files,
		Stats:   shared.CalculateStats(files),
	}

	for _, commit := range compare.Commits {
		if commit == nil || commit.ID == "" {
			continue
		}
		comparison.Commits = append(comparison.Commits, convertCommit(commit))
	}

	return comparison, nil
}

// convertCommit keeps the first message line, author name and authored date
func convertCommit(commit *gitlab.Commit) types.Commit {
	entry := types.Commit{
		SHA:      commit.ID,
		ShortSHA: shared.ShortSHA(commit.ID),
		Message:  shared.FirstLine(commit.Message),
		Author:   commit.AuthorName,
	}
	if entry.Message == "" {
		entry.Message = commit.Title
	}
	if commit.AuthoredDate != nil {
		entry.Date = *commit.AuthoredDate
	}
	return entry
}

// convertDiffs converts GitLab Diffs to platform-agnostic FileChanges
func convertDiffs(diffs []*gitlab.Diff) []types.FileChange {
	result := make([]types.FileChange, 0, len(diffs))
	for _, diff := range diffs {
		if diff == nil {
			continue
		}
		result = append(result, convertDiff(diff))
	}
	return result
}

// convertDiff converts a GitLab Diff to platform-agnostic FileChange.
// GitLab reports no line counts, so they are parsed from the patch.
func convertDiff(diff *gitlab.Diff) types.FileChange {
	fileChange := types.FileChange{
		Filename: diff.NewPath,
		Patch:    diff.Diff,
	}

	switch {
	case diff.NewFile:
		fileChange.Status = "added"
	case diff.DeletedFile:
		fileChange.Status = "removed"
		fileChange.Filename = diff.OldPath
	case diff.RenamedFile:
		fileChange.Status = "renamed"
		fileChange.PreviousFilename = diff.OldPath
	default:
		fileChange.Status = "modified"
	}

	additions, deletions := shared.ParsePatchStats(diff.Diff)
	fileChange.Additions = additions
	fileChange.Deletions = deletions
	fileChange.Changes = additions + deletions

	return fileChange
}
