package repogen_test

import (
	"context"
	"testing"

	"github.com/rise-and-shine/catalog/repogen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingStore_Changed(t *testing.T) {
	ctx := context.Background()
	store := repogen.NewTrackingStore[widget, int64](newMemWidgets())

	for _, code := range []string{"W-1", "W-2", "W-3"} {
		_, err := store.Add(ctx, newWidget("Widget", code, "1"))
		require.NoError(t, err)
	}
	assert.Empty(t, store.Changed())

	w, _, err := store.GetByID(ctx, 2)
	require.NoError(t, err)
	w.Name = "Widget v2"
	_, err = store.Update(ctx, w)
	require.NoError(t, err)
	_, err = store.Update(ctx, w)
	require.NoError(t, err)

	_, err = store.Delete(ctx, 3)
	require.NoError(t, err)
	_, err = store.Delete(ctx, 42)
	require.Error(t, err)

	assert.Equal(t, []int64{2, 3}, store.Changed())
}
