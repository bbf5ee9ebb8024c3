// internal/domain/cart/entity.go
package cart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item represents a single cart line. The price is captured when the
// item is added and is not re-read from the product afterwards.
type Item struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Cart represents a shopping cart stored in the Carts collection. A
// cart without a user reference belongs to a guest and expires after
// the configured TTL; user-bound carts never expire via the TTL path.
//
// TotalItems and TotalCost are always exactly the reduction over Items.
// They are adjusted incrementally alongside every item edit and never
// overwritten independently.
type Cart struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Items      []Item              `bson:"items" json:"items"`
	TotalItems int                 `bson:"totalItems" json:"totalItems"`
	TotalCost  float64             `bson:"totalCost" json:"totalCost"`
	ExpiresOn  time.Time           `bson:"expiresOn" json:"expiresOn"`
	CreatedAt  time.Time           `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updated_at"`
}

// IsExpired reports whether the cart's expiry has passed. An expired
// cart may still exist until the next sweep.
func (c *Cart) IsExpired(now time.Time) bool {
	return c.ExpiresOn.Before(now)
}
