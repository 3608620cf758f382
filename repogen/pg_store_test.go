package repogen_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/pg"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newPgWidgets(t *testing.T) (*repogen.PgStore[widget, int64, *widget], *bun.DB) {
	t.Helper()

	dsn := os.Getenv("CATALOG_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("CATALOG_TEST_PG_DSN is not set")
	}

	cfg := pg.Config{
		DSN:                 dsn,
		Schema:              "public",
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

	_, err = db.NewDropTable().Model((*widget)(nil)).IfExists().Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewCreateTable().Model((*widget)(nil)).Exec(ctx)
	require.NoError(t, err)

	store := repogen.NewPgStore[widget, int64](
		db,
		"public",
		repogen.WithNotFoundCode("WIDGET_NOT_FOUND"),
		repogen.WithConflictCodes(map[string]string{"widgets_code_key": "WIDGET_CODE_TAKEN"}),
	)
	return store, db
}

func TestPgStore_WidgetScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := newPgWidgets(t)

	w := newWidget("Widget", "W-1", "9.99")
	id, err := store.Add(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.False(t, w.CreatedAt.IsZero(), "returning clause fills timestamps")

	got, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assertSameWidget(t, w, got)

	n, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, found, err = store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestPgStore_UpdateAndGetAll(t *testing.T) {
	ctx := context.Background()
	store, _ := newPgWidgets(t)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, code := range []string{"A", "B", "C"} {
		_, err = store.Add(ctx, newWidget("w-"+code, code, "1.5"))
		require.NoError(t, err)
	}

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	w := all[1]
	w.Name = "renamed"
	n, err := store.Update(ctx, &w)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, found, err := store.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "renamed", got.Name)
}

func TestPgStore_Errors(t *testing.T) {
	ctx := context.Background()
	store, _ := newPgWidgets(t)

	n, err := store.Update(ctx, &widget{ID: 404, Name: "ghost", Code: "G"})
	assert.Equal(t, int64(0), n)
	assert.True(t, repogen.IsNotFound(err))
	assert.Equal(t, "WIDGET_NOT_FOUND", errx.AsErrorX(err).Code())

	n, err = store.Delete(ctx, 404)
	assert.Equal(t, int64(0), n)
	assert.True(t, repogen.IsNotFound(err))

	_, err = store.Add(ctx, newWidget("a", "DUP", "1"))
	require.NoError(t, err)
	_, err = store.Add(ctx, newWidget("b", "DUP", "2"))
	require.Error(t, err)
	assert.True(t, repogen.IsConflict(err))
	assert.Equal(t, "WIDGET_CODE_TAKEN", errx.AsErrorX(err).Code())
}

func TestPgStore_Transaction(t *testing.T) {
	ctx := context.Background()
	_, db := newPgWidgets(t)

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		txStore := repogen.NewPgStore[widget, int64](tx, "public")
		_, err := txStore.Add(ctx, newWidget("rolled back", "RB", "1"))
		require.NoError(t, err)
		return errx.New("abort")
	})
	require.Error(t, err)

	all, err := repogen.NewPgStore[widget, int64](db, "public").GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPgStore_NilEntity(t *testing.T) {
	ctx := context.Background()
	// nil entities are rejected before any query is built, so no connection is needed
	store := repogen.NewPgStore[widget, int64](nil, "")

	id, err := store.Add(ctx, nil)
	require.Error(t, err)
	assert.Zero(t, id)
	assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())

	n, err := store.Update(ctx, nil)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())
}
