// internal/infrastructure/database/mongo/cart_repository.go
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/your-org/storefront-api/internal/domain/cart"
)

// CartRepository implements cart.Repository against MongoDB
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a cart repository bound to the Carts
// collection
func NewCartRepository(client *Client) *CartRepository {
	return &CartRepository{
		collection: client.Collection(CartsCollection),
	}
}

// FindByID retrieves a cart by id
func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*cart.Cart, error) {
	var c cart.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert stores a new cart
func (r *CartRepository) Insert(ctx context.Context, c *cart.Cart) error {
	_, err := r.collection.InsertOne(ctx, c)
	return err
}

// SaveItems persists the item list and the matching totals in one
// update.
func (r *CartRepository) SaveItems(ctx context.Context, c *cart.Cart) error {
	update := bson.M{"$set": bson.M{
		"items":      c.Items,
		"totalItems": c.TotalItems,
		"totalCost":  c.TotalCost,
		"updatedAt":  c.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

// RefreshExpiry renews a cart's expiry timestamp
func (r *CartRepository) RefreshExpiry(ctx context.Context, id primitive.ObjectID, expiresOn time.Time) error {
	update := bson.M{"$set": bson.M{
		"expiresOn": expiresOn,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

// DeleteExpired removes guest carts whose expiry has passed. Carts with
// an owning user never match the filter.
func (r *CartRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"expiresOn": bson.M{"$lt": now},
		"userId":    bson.M{"$exists": false},
	}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
