// internal/domain/product/entity.go
package product

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of product categories
type Category string

const (
	CategoryFashion Category = "fashion"
	CategoryBeauty  Category = "beauty"
	CategoryHome    Category = "home"
)

// IsValid reports whether the category belongs to the closed set
func (c Category) IsValid() bool {
	switch c {
	case CategoryFashion, CategoryBeauty, CategoryHome:
		return true
	}
	return false
}

// Image represents a product image record
type Image struct {
	URL string `bson:"url" json:"url"`
	Tag string `bson:"tag,omitempty" json:"tag,omitempty"`
}

// Product represents the product entity stored in the Products collection
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName string             `bson:"productName" json:"productName"`
	Brand       string             `bson:"brand" json:"brand"`
	Description string             `bson:"description" json:"description"`
	Category    Category           `bson:"category" json:"category"`
	SubCategory string             `bson:"subCategory" json:"subCategory"`
	ProductType string             `bson:"productType,omitempty" json:"productType,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Images      []Image            `bson:"images" json:"images"`
	Slug        string             `bson:"slug" json:"slug"`

	// Score is the store-computed text relevance rank, present only on
	// search results.
	Score *float64 `bson:"score,omitempty" json:"score,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// Stock represents the stock projection of a product
type Stock struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}

// Slugify derives a URL slug from a product name. Slugs are unique per
// catalog; the store enforces uniqueness with an index.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
