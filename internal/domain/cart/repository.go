// internal/domain/cart/repository.go
package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a cart id resolves to no record, either
// because it was swept or never existed.
var ErrNotFound = errors.New("cart not found")

// Repository is the persistence port for carts.
type Repository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Cart, error)
	Insert(ctx context.Context, c *Cart) error
	// SaveItems persists the item list and totals together. The item
	// array rewrite is a read-then-write; an accepted race under the
	// low-contention assumption for a single client's cart.
	SaveItems(ctx context.Context, c *Cart) error
	RefreshExpiry(ctx context.Context, id primitive.ObjectID, expiresOn time.Time) error
	// DeleteExpired removes guest carts whose expiry has passed.
	// User-bound carts are exempt.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
