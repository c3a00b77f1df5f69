package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-notes-drafter/internal/git/types"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{name: "https URL", input: "https://github.com/vercel/next.js", wantOwner: "vercel", wantRepo: "next.js"},
		{name: "git suffix", input: "https://github.com/owner/repo.git", wantOwner: "owner", wantRepo: "repo"},
		{name: "trailing path", input: "https://github.com/owner/repo/tree/main", wantOwner: "owner", wantRepo: "repo"},
		{name: "compare URL", input: "https://github.com/owner/repo/compare/v1...v2", wantOwner: "owner", wantRepo: "repo"},
		{name: "owner/repo", input: "owner/repo", wantOwner: "owner", wantRepo: "repo"},
		{name: "surrounding spaces", input: "  owner/repo  ", wantOwner: "owner", wantRepo: "repo"},
		{name: "single segment", input: "repo", wantErr: true},
		{name: "too many segments", input: "a/b/c", wantErr: true},
		{name: "URL without repo", input: "https://github.com/owner", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepo(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidRepo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestParseCompareURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantBase string
		wantHead string
		wantErr  bool
	}{
		{name: "SHA refs", url: "https://github.com/owner/repo/compare/abc123...def456", wantBase: "abc123", wantHead: "def456"},
		{name: "version tags", url: "https://github.com/google/go-github/compare/v79.0.0...v80.0.0", wantBase: "v79.0.0", wantHead: "v80.0.0"},
		{name: "branch with hyphen", url: "https://github.com/org/my-repo/compare/main...feature-branch", wantBase: "main", wantHead: "feature-branch"},
		{name: "not a compare URL", url: "https://github.com/owner/repo/pulls", wantErr: true},
		{name: "two-dot separator", url: "https://github.com/owner/repo/compare/v1.0.0..v2.0.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, base, head, err := ParseCompareURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantHead, head)
		})
	}
}

func TestGraphqlEndpoint(t *testing.T) {
	assert.Equal(t, "https://ghe.example.com/api/graphql", graphqlEndpoint("https://ghe.example.com/api/v3/"))
	assert.Equal(t, "https://api.github.com/graphql", graphqlEndpoint("https://api.github.com"))
}
