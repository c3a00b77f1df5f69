package gitlab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-notes-drafter/internal/config"
	"release-notes-drafter/internal/git/types"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeGitLab records API calls by endpoint suffix
type fakeGitLab struct {
	mu       sync.Mutex
	calls    map[string]int
	requests []*http.Request
	commits  func(page string) ([]map[string]any, string)
	tags     []map[string]any
	status   int
}

func (f *fakeGitLab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	record := func(endpoint string) {
		f.mu.Lock()
		f.calls[endpoint]++
		f.mu.Unlock()
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/repository/compare"):
		record("compare")
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"message":"404 Project Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commits": []map[string]any{
				{"id": "c0ffee00c0ffee00", "title": "feat: add export", "message": "feat: add export\n\nbody", "author_name": "Ann", "authored_date": "2026-02-20T10:00:00Z"},
			},
			"diffs": []map[string]any{
				{"old_path": "src/a.go", "new_path": "src/a.go", "diff": "@@ -1 +1,2 @@\n-a\n+b\n+c"},
				{"old_path": "", "new_path": "docs/guide.md", "new_file": true, "diff": "+# Guide"},
			},
		})
	case strings.HasSuffix(r.URL.Path, "/repository/commits"):
		record("commits")
		commits, next := f.commits(r.URL.Query().Get("page"))
		if next != "" {
			w.Header().Set("X-Next-Page", next)
		}
		_ = json.NewEncoder(w).Encode(commits)
	case strings.HasSuffix(r.URL.Path, "/repository/tags"):
		record("tags")
		_ = json.NewEncoder(w).Encode(f.tags)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"404 Not Found"}`))
	}
}

func (f *fakeGitLab) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeGitLab) lastRequest(suffix string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if strings.HasSuffix(f.requests[i].URL.Path, suffix) {
			return f.requests[i]
		}
	}
	return nil
}

func newTestProvider(t *testing.T, fake *fakeGitLab) (*Provider, string) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		GitLabBaseURL:          server.URL,
		GitLabToken:            "config-token",
		MaxCommitPages:         30,
		CompareCacheSize:       16,
		CompareCacheTTLSeconds: 60,
	}
	p, err := newProvider(cfg, server.Client())
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }
	return p, server.URL
}

func TestFetchComparison_ExplicitRange(t *testing.T) {
	fake := &fakeGitLab{}
	p, serverURL := newTestProvider(t, fake)

	cmp, err := p.FetchComparison(t.Context(), types.CompareRequest{
		Repo: serverURL + "/group/sub/project",
		Base: "v1.0.0",
		Head: "v1.1.0",
	})
	require.NoError(t, err)

	req := fake.lastRequest("/repository/compare")
	require.NotNil(t, req)
	assert.Equal(t, "v1.0.0", req.URL.Query().Get("from"))
	assert.Equal(t, "v1.1.0", req.URL.Query().Get("to"))
	assert.Equal(t, "false", req.URL.Query().Get("straight"))
	assert.Equal(t, "config-token", req.Header.Get("PRIVATE-TOKEN"))
	assert.Contains(t, req.URL.EscapedPath(), "group%2Fsub%2Fproject")

	assert.Equal(t, "group/sub", cmp.Owner)
	assert.Equal(t, "project", cmp.Repo)
	require.Len(t, cmp.Commits, 1)
	assert.Equal(t, "feat: add export", cmp.Commits[0].Message)
	require.Len(t, cmp.Files, 2)
	assert.Equal(t, 2, cmp.Files[0].Additions)
	assert.Equal(t, 1, cmp.Files[0].Deletions)
	assert.Equal(t, 3, cmp.Files[0].Changes)
	assert.Equal(t, "added", cmp.Files[1].Status)
	assert.Equal(t, 3, cmp.Stats.TotalAdditions)
}

func TestFetchComparison_WindowPaginates(t *testing.T) {
	fake := &fakeGitLab{
		commits: func(page string) ([]map[string]any, string) {
			var commits []map[string]any
			if page == "2" {
				commits = append(commits, map[string]any{"id": "oldest"})
				return commits, ""
			}
			for i := 0; i < 100; i++ {
				commits = append(commits, map[string]any{"id": fmt.Sprintf("sha-%d", i)})
			}
			return commits, "2"
		},
	}
	p, serverURL := newTestProvider(t, fake)

	days := 14
	cmp, err := p.FetchComparison(t.Context(), types.CompareRequest{Repo: serverURL + "/group/project", Days: &days})
	require.NoError(t, err)

	assert.Equal(t, 2, fake.count("commits"))
	assert.Equal(t, "oldest", cmp.Base)
	assert.Equal(t, "sha-0", cmp.Head)

	req := fake.lastRequest("/repository/commits")
	require.NotNil(t, req)
	assert.Equal(t, "2026-02-15T12:00:00Z", req.URL.Query().Get("since"))
	assert.Equal(t, "2026-03-01T12:00:00Z", req.URL.Query().Get("until"))
}

func TestFetchComparison_EmptyWindow(t *testing.T) {
	fake := &fakeGitLab{
		commits: func(string) ([]map[string]any, string) { return []map[string]any{}, "" },
	}
	p, serverURL := newTestProvider(t, fake)

	days := 3
	_, err := p.FetchComparison(t.Context(), types.CompareRequest{Repo: serverURL + "/group/project", Days: &days})
	assert.ErrorIs(t, err, types.ErrEmptyRange)
	assert.Equal(t, 0, fake.count("compare"))
}

func TestFetchComparison_PreviousTag(t *testing.T) {
	fake := &fakeGitLab{
		tags: []map[string]any{{"name": "v2.0.0"}, {"name": "v1.9.3"}, {"name": "v1.10.0"}, {"name": "latest"}},
	}
	p, serverURL := newTestProvider(t, fake)

	cmp, err := p.FetchComparison(t.Context(), types.CompareRequest{
		Repo:        serverURL + "/group/project",
		Head:        "v2.0.0",
		PreviousTag: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.10.0", cmp.Base)
	assert.Equal(t, "v2.0.0", cmp.Head)
}

func TestFetchComparison_CompareURL(t *testing.T) {
	fake := &fakeGitLab{}
	p, serverURL := newTestProvider(t, fake)

	cmp, err := p.FetchComparison(t.Context(), types.CompareRequest{
		Repo: serverURL + "/group/project/-/compare/main...feature",
	})
	require.NoError(t, err)
	assert.Equal(t, "main", cmp.Base)
	assert.Equal(t, "feature", cmp.Head)
}

func TestFetchComparison_UpstreamStatus(t *testing.T) {
	fake := &fakeGitLab{status: http.StatusNotFound}
	p, serverURL := newTestProvider(t, fake)

	_, err := p.FetchComparison(t.Context(), types.CompareRequest{Repo: serverURL + "/group/project", Base: "a", Head: "b"})
	require.Error(t, err)

	var upstream *types.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.Equal(t, "GitLab", upstream.Provider)
}

func TestFetchComparison_CacheAndTokenBypass(t *testing.T) {
	fake := &fakeGitLab{}
	p, serverURL := newTestProvider(t, fake)
	req := types.CompareRequest{Repo: serverURL + "/group/project", Base: "a", Head: "b"}

	_, err := p.FetchComparison(t.Context(), req)
	require.NoError(t, err)
	_, err = p.FetchComparison(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count("compare"))

	req.Token = "user-token"
	_, err = p.FetchComparison(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.count("compare"))
	assert.Equal(t, "user-token", fake.lastRequest("/repository/compare").Header.Get("PRIVATE-TOKEN"))
}

func TestSupports(t *testing.T) {
	p, err := newProvider(&config.Config{GitLabBaseURL: "https://gitlab.example.com"}, http.DefaultClient)
	require.NoError(t, err)

	assert.True(t, p.Supports("https://gitlab.example.com/group/project"))
	assert.False(t, p.Supports("https://gitlab.com/group/project"))
	assert.False(t, p.Supports("https://github.com/owner/repo"))
	assert.False(t, p.Supports("owner/repo"))
	assert.Equal(t, "GitLab", p.Name())

	defaultHost, err := newProvider(&config.Config{}, http.DefaultClient)
	require.NoError(t, err)
	assert.True(t, defaultHost.Supports("https://gitlab.com/group/project"))
}
