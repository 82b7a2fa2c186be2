package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/internal/storage"
	"github.com/integrationhub/ideaportal/pkg/logger"
)

// ObjectClient is the subset of storage.MinIOStorage the object store uses.
type ObjectClient interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	Ping(ctx context.Context) error
}

// ObjectStore keeps each collection as "<collection>.json" in an object
// bucket. PutObject replaces the object as a whole, which gives readers the
// same all-or-nothing view as the file store's rename.
type ObjectStore struct {
	client ObjectClient
	log    *logger.Entry
}

func NewObjectStore(client ObjectClient) *ObjectStore {
	return &ObjectStore{client: client, log: logger.With("store", "object")}
}

func objectKey(collection string) string { return collection + ".json" }

func (o *ObjectStore) get(ctx context.Context, collection string) ([]byte, error) {
	b, err := o.client.GetObject(ctx, objectKey(collection))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		o.log.Warnf("get %s: %v", objectKey(collection), err)
		return nil, unreadable(collection, err)
	}
	return b, nil
}

func (o *ObjectStore) LoadIdeas(ctx context.Context) ([]idea.Idea, error) {
	b, err := o.get(ctx, CollectionIdeas)
	if err != nil {
		return nil, err
	}
	ideas, err := decodeIdeas(b)
	if err != nil {
		o.log.Warnf("decode %s: %v", objectKey(CollectionIdeas), err)
		return nil, err
	}
	return ideas, nil
}

func (o *ObjectStore) SaveIdeas(ctx context.Context, ideas []idea.Idea) error {
	b, err := encodeIdeas(ideas)
	if err != nil {
		return err
	}
	if err := o.client.PutObject(ctx, objectKey(CollectionIdeas), b, "application/json"); err != nil {
		o.log.Errorf("put %s: %v", objectKey(CollectionIdeas), err)
		return fmt.Errorf("write ideas: %w", err)
	}
	return nil
}

func (o *ObjectStore) LoadEmployees(ctx context.Context) ([]idea.Employee, error) {
	b, err := o.get(ctx, CollectionEmployees)
	if err != nil {
		return nil, err
	}
	es, err := decodeEmployees(b)
	if err != nil {
		o.log.Warnf("decode %s: %v", objectKey(CollectionEmployees), err)
		return nil, err
	}
	return es, nil
}

func (o *ObjectStore) Ping(ctx context.Context) error {
	return o.client.Ping(ctx)
}
