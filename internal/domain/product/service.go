// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Service handles product business logic
type Service struct {
	repo   Repository
	config *config.Config
}

// NewService creates a new product service
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
	}
}

// SearchRequest represents the search endpoint query parameters
type SearchRequest struct {
	Search      string `form:"search"`
	Category    string `form:"category"`
	SubCategory string `form:"subCategory"`
	Brand       string `form:"brand"`
	SortBy      string `form:"sortBy" binding:"omitempty,oneof=relevance price-ascending price-descending"`
	MinPrice    string `form:"minPrice"`
	MaxPrice    string `form:"maxPrice"`
	CurrentPage int    `form:"currentPage" binding:"omitempty,min=0"`
}

// CreateRequest represents product creation data
type CreateRequest struct {
	ProductName string  `json:"productName" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=fashion beauty home"`
	SubCategory string  `json:"subCategory" binding:"required"`
	ProductType string  `json:"productType"`
	Price       float64 `json:"price" binding:"required,gte=1"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Images      []Image `json:"images" binding:"required,dive"`
}

// Search retrieves products matching the filters, ranked and paginated
func (s *Service) Search(ctx context.Context, req *SearchRequest) (*PaginatedProducts, error) {
	query := SearchQuery{
		Search:      req.Search,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Brand:       req.Brand,
		SortBy:      req.SortBy,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}

	return s.paginate(ctx, query.BuildPipeline(), req.CurrentPage)
}

// List retrieves the product catalog page by page, in natural order
func (s *Service) List(ctx context.Context, currentPage int) (*PaginatedProducts, error) {
	return s.paginate(ctx, nil, currentPage)
}

// paginate counts the matches before windowing, then fetches the page.
func (s *Service) paginate(ctx context.Context, pipeline []Stage, currentPage int) (*PaginatedProducts, error) {
	pageSize := s.config.Catalog.DocumentsPerPage

	total, err := s.repo.Count(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to count products")
	}

	totalSeen, hasMore, nextCursor := PageMeta(total, currentPage, pageSize)

	products, err := s.repo.Aggregate(ctx, PageWindow(pipeline, currentPage, pageSize))
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve products")
	}

	if products == nil {
		products = []Product{}
	}

	return &PaginatedProducts{
		Count:             total,
		TotalProductsSeen: totalSeen,
		Data:              products,
		NextCursor:        nextCursor,
		HasMore:           hasMore,
	}, nil
}

// MaxPrice returns the maximum product price, optionally per category.
// Nil when the catalog is empty.
func (s *Service) MaxPrice(ctx context.Context, category string) (*float64, error) {
	var pipeline []Stage
	if category != "" {
		if !Category(category).IsValid() {
			return nil, apperrors.Validation("invalid category: %s", category)
		}
		pipeline = append(pipeline, MatchIn{Field: "category", Values: []string{category}})
	}
	pipeline = append(pipeline, GroupMax{Field: "price"})

	max, err := s.repo.MaxPrice(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to compute maximum price")
	}
	return max, nil
}

// GetByID retrieves a product by id
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	if err := validateObjectID(id); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no product with id: %s", id)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve product")
	}
	return p, nil
}

// GetBySlug retrieves a product by its unique slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no product with slug: %s", slug)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve product")
	}
	return p, nil
}

// Trending resolves the configured trending product ids. A missing
// product is an internal inconsistency, not a client failure.
func (s *Service) Trending(ctx context.Context) ([]Product, error) {
	products := make([]Product, 0, len(s.config.Catalog.TrendingProductIDs))

	for _, id := range s.config.Catalog.TrendingProductIDs {
		p, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.Unexpected(err, "could not find all trending products: no product with id: %s", id)
		}
		if err != nil {
			return nil, apperrors.Unexpected(err, "failed to retrieve trending products")
		}
		products = append(products, *p)
	}

	return products, nil
}

// Create stores a new product. The slug is derived from the name and
// must be unique.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Product, error) {
	now := time.Now().UTC()

	p := &Product{
		ID:          primitive.NewObjectID(),
		ProductName: req.ProductName,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    Category(req.Category),
		SubCategory: req.SubCategory,
		ProductType: req.ProductType,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Images:      req.Images,
		Slug:        Slugify(req.ProductName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Insert(ctx, p)
	if errors.Is(err, ErrDuplicateSlug) {
		return nil, apperrors.BusinessRule("a product with slug %q already exists", p.Slug)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to create product")
	}

	return p, nil
}

// Update replaces a product's attributes by id
func (s *Service) Update(ctx context.Context, id string, req *CreateRequest) (*Product, error) {
	if err := validateObjectID(id); err != nil {
		return nil, err
	}

	p := &Product{
		ProductName: req.ProductName,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    Category(req.Category),
		SubCategory: req.SubCategory,
		ProductType: req.ProductType,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Images:      req.Images,
		Slug:        Slugify(req.ProductName),
		UpdatedAt:   time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, p)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no product with id: %s", id)
	}
	if errors.Is(err, ErrDuplicateSlug) {
		return nil, apperrors.BusinessRule("a product with slug %q already exists", p.Slug)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to update product")
	}

	return updated, nil
}

// Delete removes a product by id
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateObjectID(id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFound("no product with id: %s", id)
	}
	if err != nil {
		return apperrors.Unexpected(err, "failed to delete product")
	}
	return nil
}

// GetStock returns the stock projection for one product
func (s *Service) GetStock(ctx context.Context, id string) (*Stock, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Stock{ProductID: p.ID.Hex(), Stock: p.Quantity}, nil
}

// GetAllStock returns the stock projection for every product
func (s *Service) GetAllStock(ctx context.Context) ([]Stock, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve products")
	}
	return stockProjection(products), nil
}

// GetOutOfStock returns the stock projection of products with zero stock
func (s *Service) GetOutOfStock(ctx context.Context) ([]Stock, error) {
	products, err := s.repo.FindOutOfStock(ctx)
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve products")
	}
	return stockProjection(products), nil
}

// IncreaseStock atomically adds quantity to a product's stock
func (s *Service) IncreaseStock(ctx context.Context, id string, quantity int) (*Product, error) {
	if err := validateObjectID(id); err != nil {
		return nil, err
	}

	p, err := s.repo.IncrementStock(ctx, id, quantity)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no product with id: %s", id)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to increase stock")
	}
	return p, nil
}

// DecreaseStock atomically subtracts quantity from a product's stock.
// Requests exceeding the available stock are rejected and the stock is
// left unchanged.
func (s *Service) DecreaseStock(ctx context.Context, id string, quantity int) (*Product, error) {
	if err := validateObjectID(id); err != nil {
		return nil, err
	}

	p, err := s.repo.DecrementStock(ctx, id, quantity)
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing product from insufficient stock.
		existing, findErr := s.repo.FindByID(ctx, id)
		if errors.Is(findErr, ErrNotFound) {
			return nil, apperrors.NotFound("no product with id: %s", id)
		}
		if findErr != nil {
			return nil, apperrors.Unexpected(findErr, "failed to decrease stock")
		}
		return nil, apperrors.BusinessRule("quantity (%d) exceeds existing stock (%d)", quantity, existing.Quantity)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to decrease stock")
	}
	return p, nil
}

func stockProjection(products []Product) []Stock {
	stock := make([]Stock, len(products))
	for i, p := range products {
		stock[i] = Stock{ProductID: p.ID.Hex(), Stock: p.Quantity}
	}
	return stock
}

func validateObjectID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return apperrors.Validation("invalid object id: %s", id)
	}
	return nil
}
