package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKeyValueStore checks the behaviour every KeyValueStore implementation shares.
func testKeyValueStore(ctx context.Context, t *testing.T, store KeyValueStore) {
	t.Helper()

	t.Run("Missing keys are not found", func(t *testing.T) {
		// When: reading keys that were never written
		str, found, err := store.GetString(ctx, "missing-string")

		// Then: found is false and there is no error
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, str)

		number, found, err := store.GetInt(ctx, "missing-int")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, number)
	})

	t.Run("Strings round trip and the last write wins", func(t *testing.T) {
		// Given: two writes to the same key
		require.NoError(t, store.SetString(ctx, "theme", "Light"))
		require.NoError(t, store.SetString(ctx, "theme", "Dark"))

		// When: reading the key back
		value, found, err := store.GetString(ctx, "theme")

		// Then: the last value is returned
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Dark", value)
	})

	t.Run("Integers round trip", func(t *testing.T) {
		require.NoError(t, store.SetInt(ctx, "board-size", 5))

		value, found, err := store.GetInt(ctx, "board-size")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 5, value)
	})

	t.Run("Non integer value fails to parse", func(t *testing.T) {
		// Given: a string stored where an integer is expected
		require.NoError(t, store.SetString(ctx, "broken-size", "five"))

		// When: reading it as an integer
		_, found, err := store.GetInt(ctx, "broken-size")

		// Then: ErrNotInteger is returned
		require.ErrorIs(t, err, ErrNotInteger)
		assert.True(t, found)
	})

	t.Run("Batch writes every value", func(t *testing.T) {
		// When: writing a batch
		err := store.SetStrings(ctx, map[string]string{
			"first-player-name":  "Alice",
			"second-player-name": "Bob",
		})
		require.NoError(t, err)

		// Then: every key holds its value
		for key, expected := range map[string]string{"first-player-name": "Alice", "second-player-name": "Bob"} {
			value, found, err := store.GetString(ctx, key)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, expected, value)
		}
	})
}
