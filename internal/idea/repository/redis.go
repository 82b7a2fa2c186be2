package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection as one JSON string value under
// "<prefix><collection>". SaveIdeas is a single SET of the whole document.
type RedisStore struct {
	client *redis.Client
	prefix string
	log    *logger.Entry
}

// NewRedisStore creates a Redis-backed store. Prefix may be empty.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ideaportal:"
	}
	return &RedisStore{client: client, prefix: prefix, log: logger.With("store", "redis")}
}

func (r *RedisStore) key(collection string) string {
	return r.prefix + collection
}

func (r *RedisStore) get(ctx context.Context, collection string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Warnf("get %s: %v", r.key(collection), err)
		return nil, unreadable(collection, err)
	}
	return b, nil
}

func (r *RedisStore) LoadIdeas(ctx context.Context) ([]idea.Idea, error) {
	b, err := r.get(ctx, CollectionIdeas)
	if err != nil {
		return nil, err
	}
	ideas, err := decodeIdeas(b)
	if err != nil {
		r.log.Warnf("decode %s: %v", r.key(CollectionIdeas), err)
		return nil, err
	}
	return ideas, nil
}

func (r *RedisStore) SaveIdeas(ctx context.Context, ideas []idea.Idea) error {
	b, err := encodeIdeas(ideas)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(CollectionIdeas), b, 0).Err(); err != nil {
		r.log.Errorf("set %s: %v", r.key(CollectionIdeas), err)
		return fmt.Errorf("write ideas: %w", err)
	}
	return nil
}

func (r *RedisStore) LoadEmployees(ctx context.Context) ([]idea.Employee, error) {
	b, err := r.get(ctx, CollectionEmployees)
	if err != nil {
		return nil, err
	}
	es, err := decodeEmployees(b)
	if err != nil {
		r.log.Warnf("decode %s: %v", r.key(CollectionEmployees), err)
		return nil, err
	}
	return es, nil
}

// SeedEmployees replaces the employee document. Employees are read-only to
// the service; this exists for provisioning and tests.
func (r *RedisStore) SeedEmployees(ctx context.Context, raw []byte) error {
	return r.client.Set(ctx, r.key(CollectionEmployees), raw, 0).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
