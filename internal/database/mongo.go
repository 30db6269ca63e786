package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gucci1909/regis/internal/config"
)

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(cfg.Database), nil
}

// Disconnect closes the underlying client of db.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}

// InsertedObjectID extracts the generated ObjectID from an insert result.
// The driver only returns a different ID type when the document supplied its
// own _id, which no repository here does.
func InsertedObjectID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return id, nil
}
