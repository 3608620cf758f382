package repogen_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache keeps JSON encoded values in a map and counts calls.
type fakeCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	gets    int
	hits    int
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]byte{}}
}

var errCacheDown = errors.New("cache is down")

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if c.failing {
		return false, errCacheDown
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failing {
		return errCacheDown
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failing {
		return errCacheDown
	}
	delete(c.items, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func newCachedWidgets(cache repogen.Cache) (*repogen.CachedStore[widget, int64, *widget], *repogen.MemStore[widget, int64, *widget]) {
	backend := newMemWidgets()
	return repogen.NewCachedStore[widget, int64](backend, cache, "widget", logger.NewNop()), backend
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	store, _ := newCachedWidgets(cache)

	id, err := store.Add(ctx, newWidget("Widget", "W-1", "9.99"))
	require.NoError(t, err)
	assert.False(t, cache.has("widget:1"), "add does not populate the cache")

	first, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, cache.has("widget:1"))

	second, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assertSameWidget(t, first, second)
	assert.Equal(t, 1, cache.hits)
}

func TestCachedStore_MissIsNotCached(t *testing.T) {
	cache := newFakeCache()
	store, _ := newCachedWidgets(cache)

	got, found, err := store.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.False(t, cache.has("widget:99"))
}

func TestCachedStore_Invalidation(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	store, _ := newCachedWidgets(cache)

	w := newWidget("Widget", "W-1", "9.99")
	id, err := store.Add(ctx, w)
	require.NoError(t, err)
	_, _, err = store.GetByID(ctx, id)
	require.NoError(t, err)

	w.Name = "Gadget"
	_, err = store.Update(ctx, w)
	require.NoError(t, err)
	assert.False(t, cache.has("widget:1"), "update invalidates")

	got, _, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Name)

	_, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, cache.has("widget:1"), "delete invalidates")

	got, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestCachedStore_NotFoundPassesThrough(t *testing.T) {
	store, _ := newCachedWidgets(newFakeCache())

	n, err := store.Delete(context.Background(), 5)
	assert.Equal(t, int64(0), n)
	assert.True(t, repogen.IsNotFound(err))

	n, err = store.Update(context.Background(), &widget{ID: 5})
	assert.Equal(t, int64(0), n)
	assert.True(t, repogen.IsNotFound(err))
}

func TestCachedStore_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.failing = true
	store, _ := newCachedWidgets(cache)

	w := newWidget("Widget", "W-1", "9.99")
	id, err := store.Add(ctx, w)
	require.NoError(t, err)

	got, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assertSameWidget(t, w, got)

	w.Name = "Gadget"
	n, err := store.Update(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCachedStore_GetAllBypassesCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	store, backend := newCachedWidgets(cache)

	_, err := backend.Add(ctx, newWidget("a", "A", "1"))
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 0, cache.gets)
}
