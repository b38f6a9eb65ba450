package mongodb

import (
	"context"
	"fmt"

	"finance-tracker/pkg/config"
	"finance-tracker/pkg/lazy"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// NewClient returns a handle that dials MongoDB on first use. Every caller
// shares the same client; Close disconnects it.
func NewClient(cfg config.MongoConfig, logger *zap.Logger) *lazy.Handle[*mongo.Client] {
	connect := func(ctx context.Context) (*mongo.Client, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ping mongodb: %w", err)
		}

		logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))
		return client, nil
	}

	disconnect := func(client *mongo.Client) error {
		return client.Disconnect(context.Background())
	}

	return lazy.New[*mongo.Client](connect, disconnect)
}
