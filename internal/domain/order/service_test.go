package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Mock repository for testing
type mockRepository struct {
	orders map[string]*Order
}

func newMockRepository() *mockRepository {
	return &mockRepository{orders: make(map[string]*Order)}
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockRepository) FindByStatus(ctx context.Context, status Status) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockRepository) FindAll(ctx context.Context) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockRepository) FindByUser(ctx context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		if o.UserID.Hex() == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockRepository) Insert(ctx context.Context, o *Order) error {
	m.orders[o.ID.Hex()] = o
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, from []Status, next Status) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, f := range from {
		if o.Status == f {
			o.Status = next
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrNoTransition
}

func testConfig() *config.Config {
	return &config.Config{}
}

func filledCart() *cart.Cart {
	return &cart.Cart{
		ID: primitive.NewObjectID(),
		Items: []cart.Item{
			{ProductID: primitive.NewObjectID(), Quantity: 2, Price: 15},
			{ProductID: primitive.NewObjectID(), Quantity: 1, Price: 40},
		},
		TotalItems: 3,
		TotalCost:  70,
	}
}

func TestCreateFromCartSnapshotsItems(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	c := filledCart()
	o, err := svc.CreateFromCart(context.Background(), c, &CreateRequest{
		UserID:        primitive.NewObjectID().Hex(),
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessingPayment, o.Status)
	assert.Equal(t, PaymentMethodCard, o.PaymentMethod)
	assert.Equal(t, 3, o.TotalItems)
	assert.Equal(t, 70.0, o.TotalCost)
	require.Len(t, o.Items, 2)

	// Mutating the cart afterwards must not leak into the order
	c.Items[0].Quantity = 99
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestCreateFromEmptyCartIsRejected(t *testing.T) {
	svc := NewService(newMockRepository(), testConfig())

	empty := &cart.Cart{ID: primitive.NewObjectID(), Items: []cart.Item{}}
	_, err := svc.CreateFromCart(context.Background(), empty, &CreateRequest{
		UserID:        primitive.NewObjectID().Hex(),
		PaymentMethod: "card",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func TestUpdateStatusFollowsSequence(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	o, err := svc.CreateFromCart(context.Background(), filledCart(), &CreateRequest{
		UserID:        primitive.NewObjectID().Hex(),
		PaymentMethod: "thirdPartyGateway",
	})
	require.NoError(t, err)

	for _, next := range []Status{StatusProcessingOrder, StatusShipped, StatusOrderReceived} {
		updated, err := svc.UpdateStatus(context.Background(), o.ID.Hex(), next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	o, err := svc.CreateFromCart(context.Background(), filledCart(), &CreateRequest{
		UserID:        primitive.NewObjectID().Hex(),
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), o.ID.Hex(), StatusShipped)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBusinessRule, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "cannot change from processingPayment to shipped")
}

func TestUpdateStatusNothingReachesProcessingPayment(t *testing.T) {
	svc := NewService(newMockRepository(), testConfig())

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), StatusProcessingPayment)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func TestUpdateStatusCancelledIsTerminal(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	o, err := svc.CreateFromCart(context.Background(), filledCart(), &CreateRequest{
		UserID:        primitive.NewObjectID().Hex(),
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), o.ID.Hex(), StatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), o.ID.Hex(), StatusProcessingOrder)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepository(), testConfig())

	_, err := svc.List(context.Background(), "delivered")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListByUserWithNoOrdersIsEmptySlice(t *testing.T) {
	svc := NewService(newMockRepository(), testConfig())

	orders, err := svc.ListByUser(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
