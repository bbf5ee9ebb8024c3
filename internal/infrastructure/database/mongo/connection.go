// internal/infrastructure/database/mongo/connection.go
package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/your-org/storefront-api/internal/config"
)

// Collection names in the document store.
const (
	ProductsCollection = "Products"
	CartsCollection    = "Carts"
	OrdersCollection   = "Orders"
	UsersCollection    = "Users"
)

// Client wraps the document store client and the application database
type Client struct {
	Mongo    *mongo.Client
	database *mongo.Database
}

// NewConnection creates a new document store connection
func NewConnection(cfg *config.Config) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("MongoDB connection established successfully")

	return &Client{
		Mongo:    client,
		database: client.Database(cfg.Mongo.Database),
	}, nil
}

// Close disconnects from the document store
func (c *Client) Close(ctx context.Context) error {
	return c.Mongo.Disconnect(ctx)
}

// Health checks the document store connection health
func (c *Client) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.Mongo.Ping(ctx, readpref.Primary())
}

// Database returns the application database handle
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Collection returns a collection handle by name
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// afterUpdate makes FindOneAndUpdate return the post-update document.
func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
