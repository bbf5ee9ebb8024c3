// internal/infrastructure/database/mongo/order_repository.go
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/your-org/storefront-api/internal/domain/order"
)

// OrderRepository implements order.Repository against MongoDB
type OrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates an order repository bound to the Orders
// collection
func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{
		collection: client.Collection(OrdersCollection),
	}
}

// FindByID retrieves an order by id
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, order.ErrNotFound
	}

	var o order.Order
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByStatus retrieves all orders in a status
func (r *OrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	return r.find(ctx, bson.M{"status": status})
}

// FindAll retrieves every order
func (r *OrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	return r.find(ctx, bson.M{})
}

// FindByUser retrieves the orders referencing a user id. The reference
// may dangle; no user lookup is involved.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, order.ErrNotFound
	}
	return r.find(ctx, bson.M{"userId": oid})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]order.Order, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []order.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Insert stores a new order
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	_, err := r.collection.InsertOne(ctx, o)
	return err
}

// UpdateStatus moves an order to next in one conditional update,
// matching only when the current status permits the transition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from []order.Status, next order.Status) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, order.ErrNotFound
	}

	filter := bson.M{
		"_id":    oid,
		"status": bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{
		"status":    next,
		"updatedAt": time.Now().UTC(),
	}}

	var updated order.Order
	err = r.collection.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing order from an illegal transition.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, order.ErrNoTransition
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
