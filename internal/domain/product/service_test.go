package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Mock repository for testing. Aggregation pipelines are interpreted
// only to the depth the service tests need: counting and windowing.
type mockRepository struct {
	products []Product
}

func (m *mockRepository) matchCount(pipeline []Stage) int64 {
	// Filter stages are exercised in the pipeline tests; here every
	// product matches.
	return int64(len(m.products))
}

func (m *mockRepository) Aggregate(ctx context.Context, pipeline []Stage) ([]Product, error) {
	skip, limit := 0, len(m.products)
	for _, stage := range pipeline {
		switch s := stage.(type) {
		case Skip:
			skip = s.N
		case Limit:
			limit = s.N
		}
	}

	if skip >= len(m.products) {
		return nil, nil
	}
	out := m.products[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return append([]Product(nil), out...), nil
}

func (m *mockRepository) Count(ctx context.Context, pipeline []Stage) (int64, error) {
	return m.matchCount(pipeline), nil
}

func (m *mockRepository) MaxPrice(ctx context.Context, pipeline []Stage) (*float64, error) {
	var max *float64
	for _, p := range m.products {
		if max == nil || p.Price > *max {
			v := p.Price
			max = &v
		}
	}
	return max, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	for i := range m.products {
		if m.products[i].Slug == slug {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) FindAll(ctx context.Context) ([]Product, error) {
	return append([]Product(nil), m.products...), nil
}

func (m *mockRepository) FindOutOfStock(ctx context.Context) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.Quantity == 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) Insert(ctx context.Context, p *Product) error {
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	m.products = append(m.products, *p)
	return nil
}

func (m *mockRepository) Update(ctx context.Context, id string, p *Product) (*Product, error) {
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			p.ID = m.products[i].ID
			m.products[i] = *p
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockRepository) IncrementStock(ctx context.Context, id string, delta int) (*Product, error) {
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			m.products[i].Quantity += delta
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) DecrementStock(ctx context.Context, id string, qty int) (*Product, error) {
	for i := range m.products {
		if m.products[i].ID.Hex() == id && m.products[i].Quantity >= qty {
			m.products[i].Quantity -= qty
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			DocumentsPerPage: 2,
		},
	}
}

func seedProducts(n int) []Product {
	products := make([]Product, n)
	for i := range products {
		products[i] = Product{
			ID:       primitive.NewObjectID(),
			Price:    float64(10 * (i + 1)),
			Quantity: i,
		}
	}
	return products
}

func TestListPaginatesWithFixedWindow(t *testing.T) {
	repo := &mockRepository{products: seedProducts(5)}
	svc := NewService(repo, testConfig())

	page, err := svc.List(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, int64(5), page.Count)
	assert.Equal(t, int64(2), page.TotalProductsSeen)
	assert.Len(t, page.Data, 2)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, 1, *page.NextCursor)
}

func TestListLastPageHasNoCursor(t *testing.T) {
	repo := &mockRepository{products: seedProducts(5)}
	svc := NewService(repo, testConfig())

	page, err := svc.List(context.Background(), 2)
	require.NoError(t, err)

	assert.Len(t, page.Data, 1)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestListEmptyCatalogReturnsEmptySlice(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, testConfig())

	page, err := svc.List(context.Background(), 0)
	require.NoError(t, err)

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.TotalProductsSeen)
	assert.False(t, page.HasMore)
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	svc := NewService(&mockRepository{}, testConfig())

	_, err := svc.GetByID(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGetByIDMissingProduct(t *testing.T) {
	svc := NewService(&mockRepository{}, testConfig())

	id := primitive.NewObjectID().Hex()
	_, err := svc.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), id)
}

func TestMaxPriceRejectsUnknownCategory(t *testing.T) {
	svc := NewService(&mockRepository{}, testConfig())

	_, err := svc.MaxPrice(context.Background(), "toys")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestMaxPriceEmptyCatalogIsNil(t *testing.T) {
	svc := NewService(&mockRepository{}, testConfig())

	max, err := svc.MaxPrice(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, max)
}

func TestCreateDuplicateSlugIsBusinessRule(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, testConfig())

	req := &CreateRequest{
		ProductName: "Velvet Night Serum",
		Brand:       "Glow",
		Description: "A restorative overnight serum",
		Category:    "beauty",
		SubCategory: "skincare",
		Price:       40,
		Quantity:    10,
		Images:      []Image{{URL: "https://cdn.example.com/serum.jpg", Tag: "main"}},
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func TestDecreaseStock(t *testing.T) {
	seed := Product{ID: primitive.NewObjectID(), Quantity: 5}

	t.Run("within stock succeeds", func(t *testing.T) {
		repo := &mockRepository{products: []Product{seed}}
		svc := NewService(repo, testConfig())

		p, err := svc.DecreaseStock(context.Background(), seed.ID.Hex(), 3)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Quantity)
	})

	t.Run("exceeding stock is rejected and stock unchanged", func(t *testing.T) {
		repo := &mockRepository{products: []Product{seed}}
		svc := NewService(repo, testConfig())

		_, err := svc.DecreaseStock(context.Background(), seed.ID.Hex(), 6)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindBusinessRule, apperrors.KindOf(err))
		assert.Contains(t, err.Error(), "exceeds existing stock")

		assert.Equal(t, 5, repo.products[0].Quantity)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		svc := NewService(&mockRepository{}, testConfig())

		_, err := svc.DecreaseStock(context.Background(), primitive.NewObjectID().Hex(), 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestTrendingMissingProductIsUnexpected(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.TrendingProductIDs = []string{primitive.NewObjectID().Hex()}
	svc := NewService(&mockRepository{}, cfg)

	_, err := svc.Trending(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnexpected, apperrors.KindOf(err))
}

func TestGetOutOfStockProjection(t *testing.T) {
	products := seedProducts(3) // quantities 0, 1, 2
	repo := &mockRepository{products: products}
	svc := NewService(repo, testConfig())

	stock, err := svc.GetOutOfStock(context.Background())
	require.NoError(t, err)

	require.Len(t, stock, 1)
	assert.Equal(t, products[0].ID.Hex(), stock[0].ProductID)
	assert.Equal(t, 0, stock[0].Stock)
}
