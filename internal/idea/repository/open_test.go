package repository

import (
	"context"
	"path/filepath"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/integrationhub/ideaportal/internal/config"
	"github.com/stretchr/testify/require"
)

func TestOpenFileAndMemory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := &config.Config{Store: config.StoreConfig{
		Backend:       config.BackendFile,
		IdeasFile:     filepath.Join(dir, "ideas.json"),
		EmployeesFile: filepath.Join(dir, "employees.json"),
	}}
	s, closeFn, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &FileStore{}, s)

	cfg.Store.Backend = config.BackendMemory
	s, closeFn, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &MemoryStore{}, s)
}

func TestOpenRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.BackendRedis},
		Redis: config.RedisConfig{Host: m.Host(), Port: m.Port(), KeyPrefix: "open:"},
	}
	s, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &RedisStore{}, s)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, closeFn, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Backend: "tape"}})
	require.Error(t, err)
	require.NotNil(t, closeFn)
}
