package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/goccy/go-json"
	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/observability/metrics"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func widget() *catalog.Product {
	return &catalog.Product{Name: "Widget", Code: "WDG-1", Rate: decimal.RequireFromString("9.99")}
}

func TestUnitOfWork_Products(t *testing.T) {
	store := catalog.NewMemProductStore()
	uow := catalog.NewUnitOfWork(store)

	assert.Same(t, store, uow.Products())
}

func TestWidgetScenario(t *testing.T) {
	reg := metrics.NewRegistry()
	storeMetrics, err := metrics.NewStoreMetrics(reg)
	require.NoError(t, err)

	stores := map[string]repogen.Store[catalog.Product, int64]{
		"memory": catalog.NewMemProductStore(),
		"instrumented": catalog.Instrument(catalog.NewMemProductStore(), catalog.Instrumentation{
			Logger:  logger.NewNop(),
			Metrics: storeMetrics,
		}),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			uow := catalog.NewUnitOfWork(store)

			id, err := uow.Products().Add(ctx, widget())
			require.NoError(t, err)
			assert.Equal(t, int64(1), id)

			got, found, err := uow.Products().GetByID(ctx, 1)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, int64(1), got.ID)
			assert.Equal(t, "Widget", got.Name)
			assert.True(t, decimal.RequireFromString("9.99").Equal(got.Rate))
			assert.False(t, got.CreatedAt.IsZero())

			n, err := uow.Products().Delete(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			got, found, err = uow.Products().GetByID(ctx, 1)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, got)
		})
	}
}

func TestProductStore_NotFoundCode(t *testing.T) {
	store := catalog.NewMemProductStore()

	n, err := store.Delete(context.Background(), 42)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, repogen.IsNotFound(err))
	assert.Equal(t, catalog.CodeProductNotFound, errx.AsErrorX(err).Code())
}

func TestProductStore_ConflictCode(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemProductStore()

	p := widget()
	p.ID = 7
	_, err := store.Add(ctx, p)
	require.NoError(t, err)

	dup := widget()
	dup.ID = 7
	_, err = store.Add(ctx, dup)
	require.Error(t, err)
	assert.True(t, repogen.IsConflict(err))
	assert.Equal(t, catalog.CodeProductAlreadyExists, errx.AsErrorX(err).Code())
}

func TestProductStore_CodeTaken(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemProductStore()

	_, err := store.Add(ctx, widget())
	require.NoError(t, err)

	other := &catalog.Product{Name: "Other", Code: "WDG-1", Rate: decimal.Zero}
	_, err = store.Add(ctx, other)
	require.Error(t, err)
	assert.True(t, repogen.IsConflict(err))
	assert.Equal(t, catalog.CodeProductCodeTaken, errx.AsErrorX(err).Code())

	other.Code = "OTH-1"
	id, err := store.Add(ctx, other)
	require.NoError(t, err)

	other.ID = id
	other.Code = "WDG-1"
	_, err = store.Update(ctx, other)
	assert.Equal(t, catalog.CodeProductCodeTaken, errx.AsErrorX(err).Code())
	assert.Equal(t, 2, store.Len())
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func TestTxBuilder_EvictsAfterCommit(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	backend := catalog.NewMemProductStore()
	inst := catalog.Instrumentation{Logger: logger.NewNop(), Cache: cache}

	shared := catalog.Instrument(backend, inst)
	id, err := shared.Add(ctx, widget())
	require.NoError(t, err)
	_, _, err = shared.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, cache.len())

	build := catalog.NewTxBuilder(func(bun.IDB) repogen.Store[catalog.Product, int64] { return backend }, inst)
	uow, committed := build(nil)
	require.NotNil(t, committed)

	c := cache.sets
	p, found, err := uow.Products().GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, c, cache.sets, "transaction reads must not fill the cache")

	p.Name = "Widget v2"
	_, err = uow.Products().Update(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.len())

	committed(ctx)
	assert.Equal(t, 0, cache.len())

	got, _, err := shared.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.Name)
}

func TestTxBuilder_WithoutCache(t *testing.T) {
	backend := catalog.NewMemProductStore()
	build := catalog.NewTxBuilder(func(bun.IDB) repogen.Store[catalog.Product, int64] { return backend }, catalog.Instrumentation{})

	uow, committed := build(nil)

	assert.NotNil(t, uow.Products())
	assert.Nil(t, committed)
}

func TestStaticFactory(t *testing.T) {
	uow := catalog.NewUnitOfWork(catalog.NewMemProductStore())
	factory := catalog.NewStaticFactory(uow)

	var seen *catalog.UnitOfWork
	err := factory.Do(context.Background(), func(_ context.Context, got *catalog.UnitOfWork) error {
		seen = got
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, uow, seen)

	want := errors.New("stop")
	err = factory.Do(context.Background(), func(context.Context, *catalog.UnitOfWork) error { return want })
	assert.Same(t, want, err)
}

func TestMessages(t *testing.T) {
	msgs := catalog.Messages()

	require.Contains(t, msgs, catalog.DefaultLanguage)
	for lang, byCode := range msgs {
		assert.NotEmpty(t, byCode[catalog.CodeProductNotFound], lang)
	}
}
