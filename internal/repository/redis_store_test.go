package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dooz/testing/suite"
)

func TestRedisStore(t *testing.T) {
	ctx, st := suite.New(t)

	testKeyValueStore(ctx, t, NewRedisStore(st.Storage))
}

func TestRedisStore_KeysArePrefixed(t *testing.T) {
	ctx, st := suite.New(t)

	store := NewRedisStore(st.Storage)

	// When: a setting is written
	require.NoError(t, store.SetString(ctx, "theme", "Dark"))

	// Then: it lives under the settings prefix
	value, err := st.Storage.Get(ctx, "settings:theme").Result()
	require.NoError(t, err)
	assert.Equal(t, "Dark", value)
}
