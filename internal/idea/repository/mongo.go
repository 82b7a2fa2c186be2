package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each collection as a single Mongo document keyed by the
// collection name: {_id: "ideas", items: [...], updatedAt}. SaveIdeas
// replaces that one document, so the whole-document semantics of the file
// store carry over unchanged.
type MongoStore struct {
	col *mongo.Collection
	log *logger.Entry
	now func() time.Time
}

type ideasDocument struct {
	ID        string      `bson:"_id"`
	Items     []idea.Idea `bson:"items"`
	UpdatedAt time.Time   `bson:"updatedAt"`
}

type employeesDocument struct {
	ID    string          `bson:"_id"`
	Items []idea.Employee `bson:"items"`
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col, log: logger.With("store", "mongo", "collection", col.Name()), now: time.Now}
}

func (m *MongoStore) LoadIdeas(ctx context.Context) ([]idea.Idea, error) {
	var doc ideasDocument
	err := m.col.FindOne(ctx, bson.M{"_id": CollectionIdeas}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []idea.Idea{}, nil
	}
	if err != nil {
		m.log.Warnf("find %s: %v", CollectionIdeas, err)
		return nil, unreadable(CollectionIdeas, err)
	}
	if doc.Items == nil {
		doc.Items = []idea.Idea{}
	}
	return doc.Items, nil
}

func (m *MongoStore) SaveIdeas(ctx context.Context, ideas []idea.Idea) error {
	if ideas == nil {
		ideas = []idea.Idea{}
	}
	doc := ideasDocument{ID: CollectionIdeas, Items: ideas, UpdatedAt: m.now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": CollectionIdeas}, doc, opts); err != nil {
		m.log.Errorf("replace %s: %v", CollectionIdeas, err)
		return fmt.Errorf("write ideas: %w", err)
	}
	return nil
}

func (m *MongoStore) LoadEmployees(ctx context.Context) ([]idea.Employee, error) {
	var doc employeesDocument
	err := m.col.FindOne(ctx, bson.M{"_id": CollectionEmployees}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []idea.Employee{}, nil
	}
	if err != nil {
		m.log.Warnf("find %s: %v", CollectionEmployees, err)
		return nil, unreadable(CollectionEmployees, err)
	}
	if doc.Items == nil {
		doc.Items = []idea.Employee{}
	}
	return idea.NormalizeAll(doc.Items), nil
}

// SeedEmployees replaces the employee document; provisioning only.
func (m *MongoStore) SeedEmployees(ctx context.Context, es []idea.Employee) error {
	doc := employeesDocument{ID: CollectionEmployees, Items: es}
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": CollectionEmployees}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
