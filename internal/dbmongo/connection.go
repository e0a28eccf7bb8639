// Package dbmongo holds the MongoDB side of the service: the push delivery log.
package dbmongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"dashnotify/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDeliveryCollection = "push_deliveries"

type MongoClient struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Deliveries *mongo.Collection
}

// NewMongoConnection connects, pings and makes sure the delivery log
// collection has its indexes before anything writes to it.
func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.GetMongoURI()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	name := c.MongoDB.Collection
	if name == "" {
		name = defaultDeliveryCollection
	}
	db := client.Database(c.MongoDB.Database)
	deliveries := db.Collection(name)

	if err := EnsureDeliveryIndexes(ctx, deliveries); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("MongoDB connected, delivery log in %s.%s", c.MongoDB.Database, name)
	return &MongoClient{
		Client:     client,
		Database:   db,
		Deliveries: deliveries,
	}, nil
}

// EnsureDeliveryIndexes creates the indexes the delivery log is queried by:
// a user's recent pushes, and old records by time for cleanup.
func EnsureDeliveryIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("user_id_sent_at"),
		},
		{
			Keys:    bson.D{{Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("sent_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create delivery log indexes: %w", err)
	}
	return nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
