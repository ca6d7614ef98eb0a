package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/election-result-api/pkg/config"
)

// NewMongo returns a MongoDB client for the configured URI. The driver dials lazily, so an
// unreachable server is only reported by Ping or by the first operation.
func NewMongo(cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("election-result-api")

	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout)
		opts.SetConnectTimeout(cfg.Timeout)
	}

	// Connect only validates options and starts background monitoring.
	return mongo.Connect(context.Background(), opts)
}

// Ping verifies the primary is reachable within the timeout.
func Ping(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// Collection resolves the configured collection on the client.
func Collection(client *mongo.Client, cfg config.MongoConfig) *mongo.Collection {
	return client.Database(cfg.Database).Collection(cfg.Collection)
}
