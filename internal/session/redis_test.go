package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Canapean/Market/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, time.Hour), mr
}

func TestGet_MissingSessionYieldsEmptyCart(t *testing.T) {
	store, _ := setupTestStore(t)

	cart, err := store.Get(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	cart := domain.Cart{"7": 2, "12": 1}
	require.NoError(t, store.Save(ctx, "session-a", cart))

	loaded, err := store.Get(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, cart, loaded)
}

func TestSave_SetsTTL(t *testing.T) {
	store, mr := setupTestStore(t)

	require.NoError(t, store.Save(context.Background(), "session-a", domain.Cart{"7": 1}))

	assert.Greater(t, mr.TTL(cartKey("session-a")), time.Duration(0))
}

func TestSave_EmptyCartDropsKey(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-a", domain.Cart{"7": 1}))
	require.True(t, mr.Exists(cartKey("session-a")))

	require.NoError(t, store.Save(ctx, "session-a", domain.Cart{}))

	assert.False(t, mr.Exists(cartKey("session-a")))
}

func TestGet_CorruptPayloadSurfacesError(t *testing.T) {
	store, mr := setupTestStore(t)

	require.NoError(t, mr.Set(cartKey("session-a"), "not-json"))

	_, err := store.Get(context.Background(), "session-a")

	assert.Error(t, err)
}

func TestGet_ReadsPayloadWrittenOutOfBand(t *testing.T) {
	store, mr := setupTestStore(t)

	data, err := json.Marshal(domain.Cart{"3": 4})
	require.NoError(t, err)
	require.NoError(t, mr.Set(cartKey("session-a"), string(data)))

	cart, err := store.Get(context.Background(), "session-a")
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Quantity(3))
}
