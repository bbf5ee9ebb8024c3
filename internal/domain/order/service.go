// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Service handles order business logic
type Service struct {
	repo   Repository
	config *config.Config
}

// NewService creates a new order service
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
	}
}

// CreateRequest represents the checkout request body. The items come
// from the cart snapshot, not from the request.
type CreateRequest struct {
	UserID        string `json:"userId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=card thirdPartyGateway"`
}

// UpdateStatusRequest represents the status update request body
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processingPayment processingOrder shipped orderReceived cancelled"`
}

// CreateFromCart snapshots a cart into a new order. Items and totals
// are value-copies; later cart mutation does not touch the order.
func (s *Service) CreateFromCart(ctx context.Context, c *cart.Cart, req *CreateRequest) (*Order, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, apperrors.Validation("invalid user id: %s", req.UserID)
	}

	if len(c.Items) == 0 {
		return nil, apperrors.BusinessRule("cannot create an order from an empty cart")
	}

	items := make([]Item, len(c.Items))
	for i, ci := range c.Items {
		items[i] = Item{
			ProductID: ci.ProductID,
			Quantity:  ci.Quantity,
			Price:     ci.Price,
		}
	}

	now := time.Now().UTC()

	o := &Order{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Items:         items,
		TotalItems:    c.TotalItems,
		TotalCost:     c.TotalCost,
		Status:        StatusProcessingPayment,
		PaymentMethod: PaymentMethod(req.PaymentMethod),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, apperrors.Unexpected(err, "failed to create order")
	}

	return o, nil
}

// Get retrieves an order by id
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid order id: %s", id)
	}

	o, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no order with id: %s", id)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve order")
	}

	return o, nil
}

// List retrieves all orders, optionally filtered by status
func (s *Service) List(ctx context.Context, status string) ([]Order, error) {
	var (
		orders []Order
		err    error
	)

	if status != "" {
		if !Status(status).IsValid() {
			return nil, apperrors.Validation("invalid order status: %s", status)
		}
		orders, err = s.repo.FindByStatus(ctx, Status(status))
	} else {
		orders, err = s.repo.FindAll(ctx)
	}

	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve orders")
	}

	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// ListByUser retrieves the orders created by a user. Orders survive the
// deletion of the user record, so no user lookup happens here.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		return nil, apperrors.Validation("invalid user id: %s", userID)
	}

	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve orders")
	}

	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// UpdateStatus moves an order along the status machine. The update is
// expressed as a single conditional store operation so concurrent
// transitions cannot race each other into an illegal state.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (*Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid order id: %s", id)
	}

	from := Predecessors(next)
	if len(from) == 0 {
		return nil, apperrors.BusinessRule("no order status can transition to %s", next)
	}

	o, err := s.repo.UpdateStatus(ctx, id, from, next)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no order with id: %s", id)
	}
	if errors.Is(err, ErrNoTransition) {
		current, findErr := s.repo.FindByID(ctx, id)
		if findErr != nil {
			return nil, apperrors.Unexpected(findErr, "failed to update order status")
		}
		return nil, apperrors.BusinessRule("order status cannot change from %s to %s", current.Status, next)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to update order status")
	}

	return o, nil
}
