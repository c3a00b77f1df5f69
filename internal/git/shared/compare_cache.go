package shared

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"release-notes-drafter/internal/git/types"
)

// CompareCache memoizes comparisons of resolved ranges and collapses concurrent identical fetches.
// A nil *CompareCache is valid and caches nothing.
type CompareCache struct {
	entries *expirable.LRU[string, *types.Comparison]
	group   singleflight.Group
}

// NewCompareCache returns nil when size is zero
func NewCompareCache(size int, ttl time.Duration) *CompareCache {
	if size <= 0 {
		return nil
	}
	return &CompareCache{
		entries: expirable.NewLRU[string, *types.Comparison](size, nil, ttl),
	}
}

// CompareCacheKey creates a composite key "provider:project/base...head"
func CompareCacheKey(provider, project, base, head string) string {
	return fmt.Sprintf("%s:%s/%s...%s", provider, project, base, head)
}

// GetOrFetch returns a cached comparison or calls fetch once for all concurrent callers of the same key.
// The shared fetch is detached from any single caller's cancellation; each caller still
// stops waiting when its own ctx is done.
func (c *CompareCache) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (*types.Comparison, error)) (*types.Comparison, error) {
	if c == nil {
		return fetch(ctx)
	}

	if cached, ok := c.entries.Get(key); ok {
		slog.Debug("Using cached comparison", "key", key)
		return cached, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		comparison, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, comparison)
		return comparison, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("Shared in-flight comparison", "key", key)
		}
		return res.Val.(*types.Comparison), nil
	}
}

// Len reports the number of live entries
func (c *CompareCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
