package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/integrationhub/ideaportal/internal/config"
	"github.com/integrationhub/ideaportal/internal/database"
	"github.com/integrationhub/ideaportal/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Open builds the store selected by cfg.Store.Backend. The returned close
// function releases backend connections and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Store.IdeasFile, cfg.Store.EmployeesFile), noop, nil
	case config.BackendMemory:
		return NewMemoryStore(nil, nil), noop, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr(), err)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			return nil, noop, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		return NewMongoStore(col), func() { _ = client.Disconnect(context.Background()) }, nil
	case config.BackendObject:
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, noop, err
		}
		return NewObjectStore(s), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
