package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osama171998/minna-app/internal/config"
)

const connectTimeout = 10 * time.Second

// Connect builds the Mongo client for the configured connection string.
// A failed ping is logged but does not abort startup: the process comes up
// degraded and the readiness probe reports the broken dependency.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("mongodb ping failed, continuing degraded", "error", err)
		return client, nil
	}
	logger.Info("connected to mongodb", "database", cfg.MongoDatabase)
	return client, nil
}

// Database selects the application database from the shared client.
func Database(client *mongo.Client, cfg *config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}

// EnsureIndexes creates the unique email index on the users collection.
// Registration uniqueness relies on this index, not on check-then-write.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique email index: %w", err)
	}
	return nil
}
