package catalog_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/catalog"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

const testSchema = "catalog_test"

func newPgDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := os.Getenv("CATALOG_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("CATALOG_TEST_PG_DSN is not set")
	}

	cfg := pg.Config{
		DSN:                 dsn,
		ReadyAttempts:       3,
		ReadyDelay:          100 * time.Millisecond,
		PoolMaxConns:        4,
		PoolMinConns:        1,
		PoolMaxConnLifetime: time.Hour,
		PoolMaxConnIdleTime: time.Minute,
	}
	db, err := pg.NewBunDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, pg.WaitReady(ctx, db, cfg))

	_, err = db.NewRaw("DROP SCHEMA IF EXISTS ? CASCADE", bun.Ident(testSchema)).Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, catalog.CreateSchema(ctx, db, testSchema))
	// second run must be a no-op
	require.NoError(t, catalog.CreateSchema(ctx, db, testSchema))

	return db
}

func buildPgUoW(idb bun.IDB) *catalog.UnitOfWork {
	return catalog.NewUnitOfWork(catalog.NewPgProductStore(idb, testSchema))
}

func TestPgFactory_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	db := newPgDB(t)
	factory := catalog.NewPgFactory(db, catalog.PgTxBuilder(testSchema, catalog.Instrumentation{}))
	uow := buildPgUoW(db)

	var committedID int64
	err := factory.Do(ctx, func(ctx context.Context, tx *catalog.UnitOfWork) error {
		id, err := tx.Products().Add(ctx, widget())
		committedID = id
		return err
	})
	require.NoError(t, err)

	_, found, err := uow.Products().GetByID(ctx, committedID)
	require.NoError(t, err)
	assert.True(t, found)

	boom := errors.New("boom")
	var rolledBackID int64
	err = factory.Do(ctx, func(ctx context.Context, tx *catalog.UnitOfWork) error {
		p := widget()
		p.Code = "WDG-2"
		id, err := tx.Products().Add(ctx, p)
		require.NoError(t, err)
		rolledBackID = id
		return boom
	})
	assert.Same(t, boom, err)

	_, found, err = uow.Products().GetByID(ctx, rolledBackID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPgProductStore_CodeTaken(t *testing.T) {
	ctx := context.Background()
	uow := buildPgUoW(newPgDB(t))

	_, err := uow.Products().Add(ctx, widget())
	require.NoError(t, err)

	_, err = uow.Products().Add(ctx, &catalog.Product{Name: "Other", Code: "WDG-1", Rate: decimal.Zero})
	require.Error(t, err)
	assert.Equal(t, catalog.CodeProductCodeTaken, errx.AsErrorX(err).Code())
	assert.Equal(t, errx.T_Conflict, errx.AsErrorX(err).Type())
}

func TestPgFactory_EvictsCacheOnlyOnCommit(t *testing.T) {
	ctx := context.Background()
	db := newPgDB(t)
	cache := newMapCache()
	inst := catalog.Instrumentation{Logger: logger.NewNop(), Cache: cache}

	uow := catalog.NewUnitOfWork(catalog.Instrument(catalog.NewPgProductStore(db, testSchema), inst))
	factory := catalog.NewPgFactory(db, catalog.PgTxBuilder(testSchema, inst))

	id, err := uow.Products().Add(ctx, widget())
	require.NoError(t, err)
	_, _, err = uow.Products().GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, cache.len())

	rename := func(name string, fail error) error {
		return factory.Do(ctx, func(ctx context.Context, tx *catalog.UnitOfWork) error {
			p, _, err := tx.Products().GetByID(ctx, id)
			require.NoError(t, err)
			p.Name = name
			_, err = tx.Products().Update(ctx, p)
			require.NoError(t, err)
			assert.Equal(t, 1, cache.len(), "evicted before commit")
			return fail
		})
	}

	boom := errors.New("boom")
	require.Same(t, boom, rename("Rolled back", boom))
	assert.Equal(t, 1, cache.len())

	require.NoError(t, rename("Widget v2", nil))
	assert.Equal(t, 0, cache.len())

	got, found, err := uow.Products().GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Widget v2", got.Name)
}
