package repogen_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/mongowr"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newMongoWidgets(t *testing.T) *repogen.MongoStore[widget, int64, *widget] {
	t.Helper()

	uri := os.Getenv("CATALOG_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CATALOG_TEST_MONGO_URI is not set")
	}

	ctx := context.Background()
	client, err := mongowr.Connect(ctx, mongowr.Config{
		URI:            uri,
		Database:       "catalog_test",
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    4,
		ReadyAttempts:  3,
		ReadyDelay:     100 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("catalog_test")
	require.NoError(t, db.Drop(ctx))

	coll := db.Collection("widgets")
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("widgets_code_key"),
	})
	require.NoError(t, err)

	return repogen.NewMongoStore[widget, int64](
		coll,
		repogen.MongoCounter(db, "widgets"),
		repogen.WithConflictCodes(map[string]string{"widgets_code_key": "WIDGET_CODE_TAKEN"}),
	)
}

func TestMongoStore_WidgetScenario(t *testing.T) {
	ctx := context.Background()
	store := newMongoWidgets(t)

	w := newWidget("Widget", "W-1", "9.99")
	id, err := store.Add(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assertSameWidget(t, w, got)

	n, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, found, err = store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMongoStore_UpdateGetAllAndErrors(t *testing.T) {
	ctx := context.Background()
	store := newMongoWidgets(t)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, code := range []string{"A", "B"} {
		_, err = store.Add(ctx, newWidget("w-"+code, code, "2"))
		require.NoError(t, err)
	}

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)

	w := all[0]
	w.Name = "renamed"
	n, err := store.Update(ctx, &w)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _, err := store.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	n, err = store.Update(ctx, &widget{ID: 99, Code: "Z"})
	assert.Equal(t, int64(0), n)
	assert.True(t, repogen.IsNotFound(err))

	_, err = store.Add(ctx, newWidget("dup", "A", "1"))
	require.Error(t, err)
	assert.True(t, repogen.IsConflict(err))
	assert.Equal(t, "WIDGET_CODE_TAKEN", errx.AsErrorX(err).Code())
}
