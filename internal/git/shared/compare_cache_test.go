package shared

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-notes-drafter/internal/git/types"
)

func TestCompareCache_HitAfterFetch(t *testing.T) {
	cache := NewCompareCache(4, time.Minute)
	var calls int32
	fetch := func(ctx context.Context) (*types.Comparison, error) {
		atomic.AddInt32(&calls, 1)
		return &types.Comparison{Base: "a", Head: "b"}, nil
	}

	key := CompareCacheKey("GitHub", "o/r", "a", "b")
	first, err := cache.GetOrFetch(t.Context(), key, fetch)
	require.NoError(t, err)
	second, err := cache.GetOrFetch(t.Context(), key, fetch)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, 1, cache.Len())
}

func TestCompareCache_ErrorsAreNotCached(t *testing.T) {
	cache := NewCompareCache(4, time.Minute)
	boom := errors.New("boom")
	var calls int32
	fetch := func(ctx context.Context) (*types.Comparison, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		_, err := cache.GetOrFetch(t.Context(), "k", fetch)
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, int32(2), calls)
	assert.Equal(t, 0, cache.Len())
}

func TestCompareCache_CollapsesConcurrentFetches(t *testing.T) {
	cache := NewCompareCache(4, time.Minute)
	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (*types.Comparison, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &types.Comparison{}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.GetOrFetch(t.Context(), "k", fetch)
			assert.NoError(t, err)
		}()
	}
	// give the goroutines time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(8))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
	assert.Equal(t, 1, cache.Len())
}

func TestCompareCache_NilDisablesCaching(t *testing.T) {
	cache := NewCompareCache(0, time.Minute)
	assert.Nil(t, cache)

	var calls int32
	fetch := func(ctx context.Context) (*types.Comparison, error) {
		atomic.AddInt32(&calls, 1)
		return &types.Comparison{}, nil
	}
	_, _ = cache.GetOrFetch(t.Context(), "k", fetch)
	_, _ = cache.GetOrFetch(t.Context(), "k", fetch)

	assert.Equal(t, int32(2), calls)
	assert.Equal(t, 0, cache.Len())
}

func TestCompareCache_Expires(t *testing.T) {
	cache := NewCompareCache(4, 20*time.Millisecond)
	var calls int32
	fetch := func(ctx context.Context) (*types.Comparison, error) {
		atomic.AddInt32(&calls, 1)
		return &types.Comparison{}, nil
	}

	_, _ = cache.GetOrFetch(t.Context(), "k", fetch)
	time.Sleep(60 * time.Millisecond)
	_, _ = cache.GetOrFetch(t.Context(), "k", fetch)

	assert.Equal(t, int32(2), calls)
}

func TestCompareCache_CallerCancellationDoesNotFailOthers(t *testing.T) {
	cache := NewCompareCache(4, time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var fetchErr error
	fetch := func(ctx context.Context) (*types.Comparison, error) {
		close(started)
		<-release
		fetchErr = ctx.Err()
		return &types.Comparison{Base: "a", Head: "b"}, nil
	}

	firstCtx, cancel := context.WithCancel(t.Context())
	firstDone := make(chan error, 1)
	go func() {
		_, err := cache.GetOrFetch(firstCtx, "k", fetch)
		firstDone <- err
	}()
	<-started

	secondDone := make(chan *types.Comparison, 1)
	go func() {
		cmp, err := cache.GetOrFetch(t.Context(), "k", fetch)
		assert.NoError(t, err)
		secondDone <- cmp
	}()
	// let the second caller join the in-flight call
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstDone, context.Canceled)

	close(release)
	cmp := <-secondDone
	require.NotNil(t, cmp)
	assert.Equal(t, "a", cmp.Base)
	assert.NoError(t, fetchErr)
	assert.Equal(t, 1, cache.Len())
}
