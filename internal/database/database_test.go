package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedra_storefront/internal/config"
	"cedra_storefront/internal/session"
)

func TestOpenSessionStore_Memory(t *testing.T) {
	factory, backends, err := OpenSessionStore(context.Background(), config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	defer backends.Close()

	assert.Nil(t, backends.Redis)
	assert.IsType(t, &session.MemoryStore{}, factory("abc"))
}

func TestOpenSessionStore_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	factory, backends, err := OpenSessionStore(context.Background(), config.Config{StoreBackend: config.BackendFile, StoreDir: dir})
	require.NoError(t, err)
	defer backends.Close()

	ctx := context.Background()
	require.NoError(t, factory("abc").Set(ctx, session.KeyToken, "t"))
	assert.FileExists(t, filepath.Join(dir, "abc.json"))
}

func TestOpenSessionStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{StoreBackend: config.BackendRedis, RedisHost: mr.Addr()}

	factory, backends, err := OpenSessionStore(context.Background(), cfg)
	require.NoError(t, err)
	defer backends.Close()

	require.NotNil(t, backends.Redis)
	require.NoError(t, factory("abc").Set(context.Background(), session.KeyCart, "[]"))
	assert.True(t, mr.Exists("storefront:abc:cart"))
}

func TestOpenSessionStore_RedisDownIsFatalOnlyForRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, _, err = OpenSessionStore(context.Background(), config.Config{StoreBackend: config.BackendRedis, RedisHost: addr})
	assert.Error(t, err)

	_, backends, err := OpenSessionStore(context.Background(), config.Config{StoreBackend: config.BackendMemory, RedisHost: addr})
	require.NoError(t, err)
	assert.Nil(t, backends.Redis)
}

func TestOpenSessionStore_Unknown(t *testing.T) {
	_, _, err := OpenSessionStore(context.Background(), config.Config{StoreBackend: "etcd"})
	assert.ErrorContains(t, err, "unknown STORE_BACKEND")
}

func TestConnectScylla_RequiresHosts(t *testing.T) {
	_, err := ConnectScylla(config.Config{})
	assert.Error(t, err)
}
