package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dooz/internal/repository/storage/sqlite"
)

func newSQLiteStorage(ctx context.Context, t *testing.T, path string) *sqlite.Storage {
	t.Helper()

	storage, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = storage.Close()
	})

	require.NoError(t, storage.Init(ctx))

	return storage
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	storage := newSQLiteStorage(ctx, t, filepath.Join(t.TempDir(), "settings.db"))

	testKeyValueStore(ctx, t, NewSQLiteStore(storage.Connection))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	// Given: a value written through one connection
	first := newSQLiteStorage(ctx, t, path)
	require.NoError(t, NewSQLiteStore(first.Connection).SetString(ctx, "theme", "Dark"))
	require.NoError(t, first.Close())

	// When: the database is opened again
	second := newSQLiteStorage(ctx, t, path)
	value, found, err := NewSQLiteStore(second.Connection).GetString(ctx, "theme")

	// Then: the value is still there
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Dark", value)
}

func TestSQLiteStore_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	storage := newSQLiteStorage(ctx, t, filepath.Join(t.TempDir(), "settings.db"))
	store := NewSQLiteStore(storage.Connection)

	// Given: a cancelled context
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	// When: writing a batch with it
	err := store.SetStrings(cancelled, map[string]string{"first-player-name": "Alice", "second-player-name": "Bob"})

	// Then: it fails and none of the keys were written
	require.Error(t, err)
	for _, key := range []string{"first-player-name", "second-player-name"} {
		_, found, err := store.GetString(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	}
}
