package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("IDEAS_FILE", "")
	t.Setenv("EMPLOYEES_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "data/ideas.json", cfg.Store.IdeasFile)
	assert.Equal(t, 20, cfg.Store.DefaultPageSize)
	assert.Equal(t, 100, cfg.Store.MaxPageSize)
	assert.False(t, cfg.Store.SerializeWrites)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "", cfg.Redis.Addr())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SERIALIZE_WRITES", "true")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("MAX_PAGE_SIZE", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.True(t, cfg.Store.SerializeWrites)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 50, cfg.Store.MaxPageSize)
}

func TestLoadConfigRejectsIncompleteBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestValidateUnknownBackend(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Backend: "floppy", DefaultPageSize: 20, MaxPageSize: 100}}
	require.Error(t, cfg.Validate())
}

func TestValidatePageSizes(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Backend: BackendMemory, DefaultPageSize: 50, MaxPageSize: 10}}
	require.Error(t, cfg.Validate())
}

func TestReadSkipsValidation(t *testing.T) {
	t.Setenv("STORE_BACKEND", "object")
	t.Setenv("MINIO_ENDPOINT", "")

	_, err := LoadConfig()
	require.Error(t, err)

	cfg := Read()
	assert.Equal(t, BackendObject, cfg.Store.Backend)
	cfg.Store.Backend = BackendMemory
	require.NoError(t, cfg.Validate())
}
