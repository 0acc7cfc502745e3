package database

import (
	"context"
	"fmt"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoService owns the document store client
type MongoService struct {
	config *config.MongoConfig
	logger Logger
	client *mongo.Client
}

// NewMongoService creates a new document store service
func NewMongoService(config *config.MongoConfig, logger Logger) *MongoService {
	return &MongoService{config: config, logger: logger}
}

func (s *MongoService) timeout() time.Duration {
	if s.config.Timeout <= 0 {
		return 10 * time.Second
	}
	return s.config.Timeout
}

// Connect dials the server, verifies it with a ping and returns the configured database
func (s *MongoService) Connect(ctx context.Context) (*mongo.Database, error) {
	s.logger.LogInfo("Connecting to document store", map[string]interface{}{
		"database": s.config.Database,
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	opts := options.Client().
		ApplyURI(s.config.URI).
		SetConnectTimeout(s.timeout()).
		SetServerSelectionTimeout(s.timeout())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	s.client = client
	return client.Database(s.config.Database), nil
}

// Ping checks that the document store is reachable
func (s *MongoService) Ping(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("mongo not connected")
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *MongoService) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
