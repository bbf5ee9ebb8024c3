// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
)

// Sentinel errors returned by repository implementations.
var (
	ErrNotFound = errors.New("order not found")
	// ErrNoTransition means the order exists but was not in a status
	// from which the requested transition is legal.
	ErrNoTransition = errors.New("order status transition not allowed")
)

// Repository is the persistence port for orders.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByStatus(ctx context.Context, status Status) ([]Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByUser(ctx context.Context, userID string) ([]Order, error)
	Insert(ctx context.Context, o *Order) error
	// UpdateStatus atomically moves an order to next, matching only
	// when its current status is one of from. ErrNoTransition when the
	// order exists outside that set.
	UpdateStatus(ctx context.Context, id string, from []Status, next Status) (*Order, error)
}
