// internal/infrastructure/database/mongo/indexes.go
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query pipeline and lifecycle
// depend on. Creation is idempotent; running it at every startup is
// safe.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	// Text index backing the free-text search predicate, plus the
	// price index used by sorting and the max-price reduction, plus
	// the unique slug.
	productIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "productName", Value: "text"},
				{Key: "brand", Value: "text"},
				{Key: "description", Value: "text"},
			},
		},
		{
			Keys: bson.D{{Key: "price", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	if _, err := c.Collection(ProductsCollection).Indexes().CreateMany(ctx, productIndexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	// The sweep scans by expiry. No TTL index here: expiry semantics
	// (guest-only deletion, lazy renewal) live in the application.
	cartIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expiresOn", Value: 1}},
		},
	}

	if _, err := c.Collection(CartsCollection).Indexes().CreateMany(ctx, cartIndexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	orderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	if _, err := c.Collection(OrdersCollection).Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := c.Collection(UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}
