package repogen_test

import (
	"context"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/repogen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemWidgets() *repogen.MemStore[widget, int64, *widget] {
	return repogen.NewMemStore[widget, int64](
		repogen.IntSequence[int64](),
		repogen.WithNotFoundCode("WIDGET_NOT_FOUND"),
	)
}

func TestMemStore_WidgetScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	id, err := store.Add(ctx, newWidget("Widget", "W-1", "9.99"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, found, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assertSameWidget(t, &widget{ID: 1, Name: "Widget", Code: "W-1", Rate: newWidget("", "", "9.99").Rate}, got)

	n, err := store.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, found, err = store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestMemStore_GetByIDUnknown(t *testing.T) {
	store := newMemWidgets()

	got, found, err := store.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestMemStore_Update(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	w := newWidget("Widget", "W-1", "9.99")
	id, err := store.Add(ctx, w)
	require.NoError(t, err)
	created := w.CreatedAt

	w.Name = "Gadget"
	w.Rate = newWidget("", "", "12.50").Rate
	n, err := store.Update(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, found, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assertSameWidget(t, w, got)
	assert.Equal(t, created, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestMemStore_NotFoundPolicy(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	tests := []struct {
		name string
		call func() (int64, error)
	}{
		{
			name: "update unknown",
			call: func() (int64, error) { return store.Update(ctx, &widget{ID: 7, Name: "ghost"}) },
		},
		{
			name: "delete unknown",
			call: func() (int64, error) { return store.Delete(ctx, 7) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.call()
			require.Error(t, err)
			assert.Equal(t, int64(0), n)
			assert.True(t, repogen.IsNotFound(err))
			assert.Equal(t, "WIDGET_NOT_FOUND", errx.AsErrorX(err).Code())
			assert.Equal(t, errx.T_NotFound, errx.AsErrorX(err).Type())
		})
	}

	assert.Equal(t, 0, store.Len())
}

func TestMemStore_GetAll(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	names := []string{"c", "a", "b"}
	for _, name := range names {
		_, err = store.Add(ctx, newWidget(name, "code-"+name, "1"))
		require.NoError(t, err)
	}

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, name := range names {
		assert.Equal(t, name, all[i].Name, "insertion order is kept")
	}

	_, err = store.Delete(ctx, all[1].ID)
	require.NoError(t, err)

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
}

func TestMemStore_CallerAssignedIDs(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	id, err := store.Add(ctx, &widget{ID: 2, Name: "two"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	_, err = store.Add(ctx, &widget{ID: 2, Name: "again"})
	require.Error(t, err)
	assert.True(t, repogen.IsConflict(err))
	assert.Equal(t, repogen.CodeObjectAlreadyExists, errx.AsErrorX(err).Code())

	// the sequence yields 1, then skips the taken 2
	first, err := store.Add(ctx, &widget{Name: "first"})
	require.NoError(t, err)
	second, err := store.Add(ctx, &widget{Name: "second"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(3), second)
	assert.Equal(t, 3, store.Len())
}

func TestMemStore_InvalidInput(t *testing.T) {
	ctx := context.Background()

	t.Run("nil entity", func(t *testing.T) {
		store := newMemWidgets()

		_, err := store.Add(ctx, nil)
		require.Error(t, err)
		assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())

		_, err = store.Update(ctx, nil)
		require.Error(t, err)
		assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())
	})

	t.Run("no sequence", func(t *testing.T) {
		store := repogen.NewMemStore[widget, int64](nil)

		_, err := store.Add(ctx, &widget{Name: "no id"})
		require.Error(t, err)
		assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())

		id, err := store.Add(ctx, &widget{ID: 5, Name: "own id"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
	})
}

func TestMemStore_ValueSemantics(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	w := newWidget("Widget", "W-1", "9.99")
	id, err := store.Add(ctx, w)
	require.NoError(t, err)

	w.Name = "changed after add"
	got, _, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	got.Name = "changed after get"
	again, _, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", again.Name)
}

func TestMemStore_Timestamps(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	w := newWidget("Widget", "W-1", "9.99")
	_, err := store.Add(ctx, w)
	require.NoError(t, err)

	assert.False(t, w.CreatedAt.IsZero())
	assert.Equal(t, w.CreatedAt, w.UpdatedAt)
}

func TestMemStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := newMemWidgets()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	ids := make(chan int64, workers*perWorker)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id, err := store.Add(ctx, &widget{Name: "w"})
				assert.NoError(t, err)
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Equal(t, workers*perWorker, store.Len())
}

func TestEntityName(t *testing.T) {
	store := repogen.NewMemStore[widget, int64](repogen.IntSequence[int64]())

	_, err := store.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no widget found to delete")

	named := repogen.NewMemStore[widget, int64](nil, repogen.WithEntityName("gizmo"))
	_, err = named.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gizmo found to delete")
}

func TestMemStore_UniqueKey(t *testing.T) {
	ctx := context.Background()
	store := repogen.NewMemStore[widget, int64](
		repogen.IntSequence[int64](),
		repogen.WithUniqueKey("widgets_code_key", func(w *widget) any { return w.Code }),
		repogen.WithConflictCodes(map[string]string{"widgets_code_key": "WIDGET_CODE_TAKEN"}),
	)

	_, err := store.Add(ctx, newWidget("Widget", "W-1", "1"))
	require.NoError(t, err)
	_, err = store.Add(ctx, newWidget("Gadget", "G-1", "2"))
	require.NoError(t, err)

	t.Run("add with taken code", func(t *testing.T) {
		_, err := store.Add(ctx, newWidget("Other", "W-1", "3"))

		require.Error(t, err)
		assert.True(t, repogen.IsConflict(err))
		assert.Equal(t, "WIDGET_CODE_TAKEN", errx.AsErrorX(err).Code())
		assert.Equal(t, 2, store.Len())
	})

	t.Run("update to taken code", func(t *testing.T) {
		w := newWidget("Gadget", "W-1", "2")
		w.ID = 2

		n, err := store.Update(ctx, w)

		require.Error(t, err)
		assert.Zero(t, n)
		assert.Equal(t, "WIDGET_CODE_TAKEN", errx.AsErrorX(err).Code())

		got, _, err := store.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "G-1", got.Code)
	})

	t.Run("update keeping own code", func(t *testing.T) {
		w := newWidget("Widget v2", "W-1", "5")
		w.ID = 1

		n, err := store.Update(ctx, w)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("code freed by delete", func(t *testing.T) {
		_, err := store.Delete(ctx, 2)
		require.NoError(t, err)

		_, err = store.Add(ctx, newWidget("Gadget again", "G-1", "2"))
		assert.NoError(t, err)
	})
}
