package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customerCollection = "customer_details"
	engineCollection   = "engines"
)

// Repository owns the MongoDB client shared by the collection repositories.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection with a ping.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// Customers returns the customer record repository.
func (r *Repository) Customers() *CustomerRepository {
	return &CustomerRepository{
		collection: r.client.Database(r.dbName).Collection(customerCollection),
	}
}

// Engines returns the engine record repository.
func (r *Repository) Engines() *EngineRepository {
	return &EngineRepository{
		collection: r.client.Database(r.dbName).Collection(engineCollection),
	}
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
