package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "kv_items"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoKV struct {
	collection *mongo.Collection
}

func NewMongoKV(db *mongo.Database) port.KVStore {
	return &mongoKV{
		collection: db.Collection(mongoCollection),
	}
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("client.Ping: %w", err)
	}

	return client.Database(database), nil
}

func (m *mongoKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("collection.FindOne: %w", err)
	}

	return doc.Value, true, nil
}

func (m *mongoKV) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}

	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().UTC(),
		},
	}

	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("collection.UpdateOne: %w", err)
	}

	return nil
}

func (m *mongoKV) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("collection.DeleteOne: %w", err)
	}

	return nil
}
