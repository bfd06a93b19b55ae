package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	products    []Product
	categories  []Category
	subs        []SubCategory
	productsErr error
	catsErr     error
	subsErr     error
	calls       atomic.Int64
}

func (s *stubSource) Products(context.Context) ([]Product, error) {
	s.calls.Add(1)
	return s.products, s.productsErr
}

func (s *stubSource) Categories(context.Context) ([]Category, error) {
	return s.categories, s.catsErr
}

func (s *stubSource) Subcategories(context.Context) ([]SubCategory, error) {
	return s.subs, s.subsErr
}

func TestLoaderJoinsAllThreeFetches(t *testing.T) {
	src := &stubSource{
		products:   []Product{{ID: 1, Title: "Cobb Tester"}},
		categories: []Category{{ID: 1, Title: "Paper Testing Equipment"}},
		subs:       []SubCategory{{ID: 1, Title: "Cobb Tester", Category: "Paper Testing Equipment"}},
	}
	snap := NewLoader(src, nil).Load(context.Background())
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Categories, 1)
	assert.Len(t, snap.Subcategories, 1)
}

func TestLoaderDegradesFailedFetchToEmpty(t *testing.T) {
	src := &stubSource{
		productsErr: errors.New("connection refused"),
		categories:  []Category{{ID: 1, Title: "Paper Testing Equipment"}},
	}
	snap := NewLoader(src, nil).Load(context.Background())
	assert.Empty(t, snap.Products, "failed fetch degrades to empty, not error")
	assert.Len(t, snap.Categories, 1)

	// The degraded snapshot still filters cleanly.
	assert.Empty(t, snap.Filter(Criteria{Query: "anything"}))
}

func TestLoaderAllFetchesFail(t *testing.T) {
	src := &stubSource{
		productsErr: errors.New("down"),
		catsErr:     errors.New("down"),
		subsErr:     errors.New("down"),
	}
	snap := NewLoader(src, nil).Load(context.Background())
	require.NotNil(t, snap)
	assert.Empty(t, snap.Filter(DefaultCriteria()))
}

func newTestCache(t *testing.T) *SnapshotCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSnapshotCache(client, time.Minute)
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	snap := testSnapshot()
	require.NoError(t, cache.Set(ctx, snap))

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Len(t, got.Products, len(snap.Products))
	assert.Equal(t, snap.Products[0].Title, got.Products[0].Title)
	assert.True(t, snap.Products[1].Price.Equal(got.Products[1].Price), "decimal prices survive the round trip")
}

func TestSnapshotCacheBumpInvalidates(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	require.NoError(t, cache.Set(ctx, testSnapshot()))

	require.NoError(t, cache.Bump(ctx))

	_, ok := cache.Get(ctx)
	assert.False(t, ok, "version bump must invalidate the cached snapshot")
}

func TestNilSnapshotCacheIsPassthrough(t *testing.T) {
	ctx := context.Background()
	var cache *SnapshotCache
	_, ok := cache.Get(ctx)
	assert.False(t, ok)
	assert.NoError(t, cache.Set(ctx, testSnapshot()))
	assert.NoError(t, cache.Bump(ctx))
}

func TestCachedLoaderServesFromCacheOnSecondLoad(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{products: []Product{{ID: 1, Title: "Cobb Tester"}}}
	loader := NewCachedLoader(NewLoader(src, nil), newTestCache(t))

	first := loader.Load(ctx)
	require.Len(t, first.Products, 1)
	second := loader.Load(ctx)
	require.Len(t, second.Products, 1)

	assert.Equal(t, int64(1), src.calls.Load(), "second load must hit the cache")
}
