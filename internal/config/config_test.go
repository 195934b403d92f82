package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_URL", "STORE_BACKEND", "APP_ENV", "SCYLLA_HOSTS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.ScyllaHosts)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.shop.test/")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SCYLLA_HOSTS", "10.0.0.1, 10.0.0.2,")

	cfg := FromEnv()

	assert.Equal(t, "https://api.shop.test", cfg.APIBaseURL)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.ScyllaHosts)
}
