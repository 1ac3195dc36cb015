package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crediario/internal/kv"
)

const collectionsName = "collections"

type collectionDocument struct {
	Name      string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// CollectionStore keeps each kv collection as one document holding the
// JSON-encoded record array.
type CollectionStore struct {
	coll *mongo.Collection
}

func NewCollectionStore(client *mongo.Client, database string) *CollectionStore {
	return &CollectionStore{coll: client.Database(database).Collection(collectionsName)}
}

func (s *CollectionStore) Get(ctx context.Context, collection string) ([]kv.Record, error) {
	var doc collectionDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}

	return kv.DecodeCollection([]byte(doc.Payload))
}

func (s *CollectionStore) Put(ctx context.Context, collection string, records []kv.Record) error {
	payload, err := kv.EncodeCollection(records)
	if err != nil {
		return err
	}

	doc := collectionDocument{
		Name:      collection,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": collection}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("writing collection %s: %w", collection, err)
	}
	return nil
}
