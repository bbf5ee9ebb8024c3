// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Service handles the cart lifecycle and item aggregation
type Service struct {
	repo   Repository
	config *config.Config
}

// NewService creates a new cart service
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
	}
}

// AddItemRequest represents the add-item request body
type AddItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// RemoveItemRequest represents the remove-item request body
type RemoveItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetOrCreate resolves a cart from a client-held identifier, creating
// one lazily on first touch. The returned flag reports whether a new
// cart was created, in which case the caller must hand a fresh
// identifier back to the client.
//
// An identifier whose cart no longer exists (already swept, or invalid)
// is treated the same as no identifier. A cart that is expired but not
// yet swept has its expiry renewed instead of being treated as gone.
func (s *Service) GetOrCreate(ctx context.Context, cartID string) (*Cart, bool, error) {
	now := time.Now().UTC()
	expiresOn := now.Add(s.config.Cart.TTL)

	if cartID != "" {
		if id, err := primitive.ObjectIDFromHex(cartID); err == nil {
			existing, err := s.repo.FindByID(ctx, id)
			switch {
			case err == nil:
				if existing.IsExpired(now) {
					if err := s.repo.RefreshExpiry(ctx, id, expiresOn); err != nil {
						return nil, false, apperrors.Unexpected(err, "failed to renew cart expiry")
					}
					existing.ExpiresOn = expiresOn
				}
				return existing, false, nil
			case errors.Is(err, ErrNotFound):
				// Swept or never existed. Fall through and create.
			default:
				return nil, false, apperrors.Unexpected(err, "failed to retrieve cart")
			}
		}
	}

	newCart := &Cart{
		ID:         primitive.NewObjectID(),
		Items:      []Item{},
		TotalItems: 0,
		TotalCost:  0,
		ExpiresOn:  expiresOn,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, newCart); err != nil {
		return nil, false, apperrors.Unexpected(err, "failed to create cart")
	}

	return newCart, true, nil
}

// Get resolves a cart strictly: a missing identifier or record is a
// not-found failure. Used by flows that must not create a cart.
func (s *Service) Get(ctx context.Context, cartID string) (*Cart, error) {
	if cartID == "" {
		return nil, apperrors.NotFound("no cart identifier presented")
	}

	id, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return nil, apperrors.Validation("invalid cart id: %s", cartID)
	}

	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no cart with id: %s", cartID)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve cart")
	}

	return c, nil
}

// AddOrUpdateItem merges an item into the cart. An item for a product
// already present replaces it in place and the totals are adjusted by
// the delta between the old and new line, never recomputed from
// scratch. The single affected item is returned to bound the response
// size.
func (s *Service) AddOrUpdateItem(ctx context.Context, c *Cart, req *AddItemRequest) (*Item, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperrors.Validation("invalid product id: %s", req.ProductID)
	}

	newItem := Item{
		ProductID: productID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}

	replaced := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			old := c.Items[i]
			c.Items[i] = newItem

			c.TotalItems += newItem.Quantity - old.Quantity
			c.TotalCost += float64(newItem.Quantity)*newItem.Price - float64(old.Quantity)*old.Price
			replaced = true
			break
		}
	}

	if !replaced {
		c.Items = append(c.Items, newItem)
		c.TotalItems += newItem.Quantity
		c.TotalCost += float64(newItem.Quantity) * newItem.Price
	}

	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveItems(ctx, c); err != nil {
		return nil, apperrors.Unexpected(err, "failed to save cart")
	}

	return &newItem, nil
}

// RemoveItem filters the item for a product out of the cart,
// decrementing the totals by the removed line. Removing a product that
// is not in the cart leaves items and totals untouched and returns nil.
func (s *Service) RemoveItem(ctx context.Context, c *Cart, productIDHex string) (*Item, error) {
	productID, err := primitive.ObjectIDFromHex(productIDHex)
	if err != nil {
		return nil, apperrors.Validation("invalid product id: %s", productIDHex)
	}

	var removed *Item

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID == productID {
			it := item
			removed = &it
			c.TotalItems -= item.Quantity
			c.TotalCost -= float64(item.Quantity) * item.Price
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept

	if removed == nil {
		return nil, nil
	}

	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveItems(ctx, c); err != nil {
		return nil, apperrors.Unexpected(err, "failed to save cart")
	}

	return removed, nil
}
