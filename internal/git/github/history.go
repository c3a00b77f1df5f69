package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shurcooL/githubv4"

	"release-notes-drafter/internal/git/shared"
)

type historyQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					History struct {
						Nodes []struct {
							Oid string
						}
						PageInfo struct {
							HasNextPage bool
							EndCursor   githubv4.String
						}
					} `graphql:"history(first: 100, since: $since, until: $until, after: $cursor)"`
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $repo)"`
}

// listWindowSHAsGraphQL walks default-branch history in the window, newest first
func listWindowSHAsGraphQL(ctx context.Context, client *githubv4.Client, owner, repo string, window shared.Window, maxPages int) ([]string, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"repo":   githubv4.String(repo),
		"since":  githubv4.GitTimestamp{Time: window.Since},
		"until":  githubv4.GitTimestamp{Time: window.Until},
		"cursor": (*githubv4.String)(nil),
	}

	var shas []string
	for pages := 0; pages < maxPages; pages++ {
		var query historyQuery
		if err := client.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to query history for %s/%s: %w", owner, repo, err)
		}

		history := query.Repository.DefaultBranchRef.Target.Commit.History
		for _, node := range history.Nodes {
			shas = append(shas, node.Oid)
		}

		if !history.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(history.PageInfo.EndCursor)
	}

	slog.Debug("Listed commits in window via GraphQL", "owner", owner, "repo", repo, "commits", len(shas))
	return shas, nil
}
