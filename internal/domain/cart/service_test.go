package cart

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Mock repository for testing
type mockRepository struct {
	carts     map[primitive.ObjectID]*Cart
	saveCalls int
	refreshed map[primitive.ObjectID]time.Time
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		carts:     make(map[primitive.ObjectID]*Cart),
		refreshed: make(map[primitive.ObjectID]time.Time),
	}
}

func (m *mockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	cp.Items = append([]Item(nil), c.Items...)
	return &cp, nil
}

func (m *mockRepository) Insert(ctx context.Context, c *Cart) error {
	m.carts[c.ID] = c
	return nil
}

func (m *mockRepository) SaveItems(ctx context.Context, c *Cart) error {
	if _, ok := m.carts[c.ID]; !ok {
		return ErrNotFound
	}
	m.saveCalls++
	m.carts[c.ID] = c
	return nil
}

func (m *mockRepository) RefreshExpiry(ctx context.Context, id primitive.ObjectID, expiresOn time.Time) error {
	c, ok := m.carts[id]
	if !ok {
		return ErrNotFound
	}
	c.ExpiresOn = expiresOn
	m.refreshed[id] = expiresOn
	return nil
}

func (m *mockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, c := range m.carts {
		if c.UserID == nil && c.IsExpired(now) {
			delete(m.carts, id)
			deleted++
		}
	}
	return deleted, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Cart: config.CartConfig{
			TTL: 30 * 24 * time.Hour,
		},
	}
}

func TestGetOrCreateNewCartIsEmpty(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	c, created, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, 0.0, c.TotalCost)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), c.ExpiresOn, time.Minute)
}

func TestGetOrCreateUnknownIDCreatesFreshCart(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	gone := primitive.NewObjectID().Hex()
	c, created, err := svc.GetOrCreate(context.Background(), gone)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, gone, c.ID.Hex())
}

func TestGetOrCreateReturnsExistingCart(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	first, _, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)

	second, created, err := svc.GetOrCreate(context.Background(), first.ID.Hex())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateRenewsExpiredCart(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	id := primitive.NewObjectID()
	repo.carts[id] = &Cart{
		ID:        id,
		Items:     []Item{},
		ExpiresOn: time.Now().UTC().Add(-time.Hour),
	}

	c, created, err := svc.GetOrCreate(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, c.ID)
	assert.True(t, c.ExpiresOn.After(time.Now().UTC()))
	assert.Contains(t, repo.refreshed, id)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), c.ExpiresOn, time.Minute)
}

func TestGetStrictFailsWithoutIdentifier(t *testing.T) {
	svc := NewService(newMockRepository(), testConfig())

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGetStrictRejectsMalformedIdentifier(t *testing.T) {
	svc := NewService(newMockRepository(), testConfig())

	_, err := svc.Get(context.Background(), "not-a-hex-id")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGetStrictDoesNotCreate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Empty(t, repo.carts)
}

func TestAddItemAppendsAndReturnsSingleItem(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	c, _, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)

	productID := primitive.NewObjectID()
	item, err := svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{
		ProductID: productID.Hex(),
		Quantity:  3,
		Price:     9.5,
	})
	require.NoError(t, err)

	assert.Equal(t, productID, item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 3, c.TotalItems)
	assert.Equal(t, 28.5, c.TotalCost)
	assert.Len(t, c.Items, 1)
}

func TestAddItemReplacesExistingLine(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	c, _, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)

	productID := primitive.NewObjectID().Hex()
	_, err = svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{ProductID: productID, Quantity: 2, Price: 10})
	require.NoError(t, err)

	item, err := svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{ProductID: productID, Quantity: 5, Price: 8})
	require.NoError(t, err)

	// The line is replaced, not accumulated
	assert.Equal(t, 5, item.Quantity)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.TotalItems)
	assert.Equal(t, 40.0, c.TotalCost)
}

func TestRemoveItemReturnsRemovedLine(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	c, _, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)

	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()
	_, err = svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{ProductID: keep.Hex(), Quantity: 1, Price: 5})
	require.NoError(t, err)
	_, err = svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{ProductID: drop.Hex(), Quantity: 2, Price: 7})
	require.NoError(t, err)

	removed, err := svc.RemoveItem(context.Background(), c, drop.Hex())
	require.NoError(t, err)
	require.NotNil(t, removed)

	assert.Equal(t, drop, removed.ProductID)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, keep, c.Items[0].ProductID)
	assert.Equal(t, 1, c.TotalItems)
	assert.Equal(t, 5.0, c.TotalCost)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, testConfig())

	c, _, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)

	_, err = svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{
		ProductID: primitive.NewObjectID().Hex(), Quantity: 2, Price: 3,
	})
	require.NoError(t, err)

	savesBefore := repo.saveCalls
	removed, err := svc.RemoveItem(context.Background(), c, primitive.NewObjectID().Hex())
	require.NoError(t, err)

	assert.Nil(t, removed)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.TotalItems)
	assert.Equal(t, 6.0, c.TotalCost)
	assert.Equal(t, savesBefore, repo.saveCalls)
}

// Totals stay consistent with the item lines across any sequence of
// adds, replacements and removals.
func TestPropertyCartTotalsMatchItemLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	productPool := make([]primitive.ObjectID, 8)
	for i := range productPool {
		productPool[i] = primitive.NewObjectID()
	}

	type op struct {
		add      bool
		product  int
		quantity int
		price    float64
	}

	opGen := gopter.CombineGens(
		gen.Bool(),
		gen.IntRange(0, len(productPool)-1),
		gen.IntRange(1, 50),
		gen.Float64Range(0.01, 500),
	).Map(func(vals []interface{}) op {
		return op{
			add:      vals[0].(bool),
			product:  vals[1].(int),
			quantity: vals[2].(int),
			price:    vals[3].(float64),
		}
	})

	properties.Property("totals equal the sum over item lines", prop.ForAll(
		func(ops []op) bool {
			repo := newMockRepository()
			svc := NewService(repo, testConfig())

			c, _, err := svc.GetOrCreate(context.Background(), "")
			if err != nil {
				return false
			}

			for _, o := range ops {
				id := productPool[o.product].Hex()
				if o.add {
					if _, err := svc.AddOrUpdateItem(context.Background(), c, &AddItemRequest{
						ProductID: id,
						Quantity:  o.quantity,
						Price:     o.price,
					}); err != nil {
						return false
					}
				} else {
					if _, err := svc.RemoveItem(context.Background(), c, id); err != nil {
						return false
					}
				}
			}

			wantItems := 0
			wantCost := 0.0
			for _, item := range c.Items {
				wantItems += item.Quantity
				wantCost += float64(item.Quantity) * item.Price
			}

			return c.TotalItems == wantItems && almostEqual(c.TotalCost, wantCost)
		},
		gen.SliceOf(opGen),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}
