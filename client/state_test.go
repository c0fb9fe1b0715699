package client

import (
	"context"
	"path/filepath"
	"testing"

	"food-ordering-api/cart"
	"food-ordering-api/config"
	"food-ordering-api/kv"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStatePicksRedisWhenConfigured(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := OpenState(&config.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	_, ok := store.(*kv.Redis)
	require.True(t, ok)

	// The cart works through it like through any other store.
	c := cart.New(store)
	require.NoError(t, c.Add(ctx, cart.Line{FoodID: 1, UnitPrice: 100, Quantity: 2, RestaurantID: 301}))
	total, err := c.Total(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, total, 1e-9)

	// A second client against the same Redis sees the same cart.
	other, err := OpenState(&config.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	lines, err := cart.New(other).Lines(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestOpenStateFallsBackToFile(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StatePath: filepath.Join(t.TempDir(), "state.json")}

	store, err := OpenState(cfg)
	require.NoError(t, err)
	_, ok := store.(*kv.File)
	require.True(t, ok)

	require.NoError(t, store.Set(ctx, TokenKey, []byte("tok")))

	// Reopening reads the same file.
	again, err := OpenState(cfg)
	require.NoError(t, err)
	v, err := again.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", string(v))
}
