package sheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diarioapp/diario/internal/store"
	"github.com/diarioapp/diario/internal/store/mocks"
)

func TestCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	cache := NewCache(60 * time.Second)
	cache.now = func() time.Time { return now }

	cache.Put(store.Table{Columns: []string{"Data"}})

	_, ok := cache.Get()
	require.True(t, ok)

	now = now.Add(59 * time.Second)
	_, ok = cache.Get()
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = cache.Get()
	require.False(t, ok)
}

func TestCachedReader_FetchesOncePerWindow(t *testing.T) {
	ctx := context.Background()
	table := store.Table{Columns: []string{"Data"}, Rows: [][]string{{"2026-08-25"}}}

	reader := &mocks.TableReader{}
	reader.On("ReadTable", ctx).Return(table, nil).Once()

	cached := NewCachedReader(reader, time.Minute)

	for range 3 {
		got, err := cached.ReadTable(ctx)
		require.NoError(t, err)
		require.Equal(t, table, got)
	}
	reader.AssertExpectations(t)
}

func TestCachedReader_ErrorNotCached(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.TableReader{}
	reader.On("ReadTable", ctx).Return(nil, store.ErrFetch).Once()
	reader.On("ReadTable", ctx).Return(store.Table{Columns: []string{"Data"}}, nil).Once()

	cached := NewCachedReader(reader, time.Minute)

	_, err := cached.ReadTable(ctx)
	require.ErrorIs(t, err, store.ErrFetch)

	got, err := cached.ReadTable(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Data"}, got.Columns)
	reader.AssertExpectations(t)
}
