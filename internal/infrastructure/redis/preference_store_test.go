package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/infrastructure/redis"
)

func TestNewClient_SinServidor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := redis.NewClient(ctx, "127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}

// Integración: requiere TEST_REDIS_ADDR.
func TestPreferenceStore_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()
	client, err := redis.NewClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	store := redis.NewPreferenceStore(client, "test:"+time.Now().Format("150405.000")+":")

	_, ok, err := store.Get(ctx, "notification-settings")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "notification-settings", `{"browser":true}`))
	v, ok, err := store.Get(ctx, "notification-settings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"browser":true}`, v)

	require.NoError(t, store.Delete(ctx, "notification-settings"))
	_, ok, err = store.Get(ctx, "notification-settings")
	require.NoError(t, err)
	assert.False(t, ok)
}
