// internal/domain/product/repository.go
package product

import (
	"context"
	"errors"
)

// Sentinel errors returned by repository implementations.
var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateSlug = errors.New("product slug already exists")
)

// Repository is the persistence port for products. The implementation
// is handed to the service once at startup.
type Repository interface {
	// Aggregate runs a pipeline and decodes the resulting documents.
	Aggregate(ctx context.Context, pipeline []Stage) ([]Product, error)
	// Count runs a pipeline with a terminal count stage.
	Count(ctx context.Context, pipeline []Stage) (int64, error)
	// MaxPrice runs a group/max reduction; nil when nothing matches.
	MaxPrice(ctx context.Context, pipeline []Stage) (*float64, error)

	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindOutOfStock(ctx context.Context) ([]Product, error)

	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, id string, p *Product) (*Product, error)
	Delete(ctx context.Context, id string) error

	// IncrementStock atomically adds delta to the stock quantity.
	IncrementStock(ctx context.Context, id string, delta int) (*Product, error)
	// DecrementStock atomically subtracts qty, matching only when the
	// current stock covers it. ErrNotFound when no document qualifies.
	DecrementStock(ctx context.Context, id string, qty int) (*Product, error)
}
