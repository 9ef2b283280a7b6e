package testing

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBContainer runs a disposable MongoDB instance for integration
// tests and owns the client connected to it.
type MongoDBContainer struct {
	container *mongodb.MongoDBContainer
	Client    *mongo.Client
}

// NewMongoDBContainer starts a MongoDB container and connects a client to it
func NewMongoDBContainer(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx,
		"mongo:6",
		mongodb.WithUsername("test"),
		mongodb.WithPassword("test"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start mongodb container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBContainer{container: container, Client: client}, nil
}

// Database returns a handle on the named test database
func (m *MongoDBContainer) Database(name string) *mongo.Database {
	return m.Client.Database(name)
}

// Terminate disconnects the client and stops the container
func (m *MongoDBContainer) Terminate(ctx context.Context) {
	if m.Client != nil {
		m.Client.Disconnect(ctx)
	}
	if m.container != nil {
		m.container.Terminate(ctx)
	}
}
