// internal/domain/product/query.go
package product

import (
	"strconv"
	"strings"
)

// Sort keys accepted by the search endpoint.
const (
	SortRelevance       = "relevance"
	SortPriceAscending  = "price-ascending"
	SortPriceDescending = "price-descending"
)

// Products in the home category are excluded from listing and search.
// Their image sizes are inconsistent with the carousel layout.
const excludedCategory = string(CategoryHome)

// Stage is one step of a store-agnostic aggregation pipeline. The
// repository translates the stage sequence into the store's query
// language; nothing in this package depends on the store.
type Stage interface {
	stage()
}

// MatchIn filters documents whose field value belongs to the given set.
type MatchIn struct {
	Field  string
	Values []string
}

// MatchText filters documents matching a free-text search term against
// the precomputed text index.
type MatchText struct {
	Term string
}

// MatchNotEqual filters out documents whose field equals the value.
type MatchNotEqual struct {
	Field string
	Value string
}

// MatchGTE keeps documents whose numeric field is >= the bound.
type MatchGTE struct {
	Field string
	Value int
}

// MatchLTE keeps documents whose numeric field is <= the bound.
type MatchLTE struct {
	Field string
	Value int
}

// AddScore projects the text relevance score onto each document.
type AddScore struct{}

// Sort orders documents by a field.
type Sort struct {
	Field      string
	Descending bool
}

// Skip drops the first N documents of the result set.
type Skip struct {
	N int
}

// Limit caps the result set at N documents.
type Limit struct {
	N int
}

// GroupMax reduces the result set to the maximum value of a field.
type GroupMax struct {
	Field string
}

// Count reduces the result set to the number of matching documents.
type Count struct{}

func (MatchIn) stage()       {}
func (MatchText) stage()     {}
func (MatchNotEqual) stage() {}
func (MatchGTE) stage()      {}
func (MatchLTE) stage()      {}
func (AddScore) stage()      {}
func (Sort) stage()          {}
func (Skip) stage()          {}
func (Limit) stage()         {}
func (GroupMax) stage()      {}
func (Count) stage()         {}

// SearchQuery carries the optional search filters after request
// validation. Multi-value fields hold comma-separated sets.
type SearchQuery struct {
	Search      string
	Category    string
	SubCategory string
	Brand       string
	SortBy      string
	MinPrice    string
	MaxPrice    string
}

// BuildPipeline translates the filters into ordered match stages and
// appends the ordering stages dictated by the sort policy. Window stages
// are appended separately so callers can count matches first.
func (q SearchQuery) BuildPipeline() []Stage {
	var pipeline []Stage

	if q.Search != "" {
		pipeline = append(pipeline, MatchText{Term: strings.TrimSpace(q.Search)})
	}

	pipeline = append(pipeline, MatchNotEqual{Field: "category", Value: excludedCategory})

	pipeline = appendFilter(pipeline, "category", q.Category)
	pipeline = appendFilter(pipeline, "subCategory", q.SubCategory)
	pipeline = appendFilter(pipeline, "brand", q.Brand)

	// Price bounds parse as positive integers. Malformed or non-positive
	// strings contribute no predicate; this leniency is deliberate.
	if min, ok := parsePriceBound(q.MinPrice); ok {
		pipeline = append(pipeline, MatchGTE{Field: "price", Value: min})
	}

	if max, ok := parsePriceBound(q.MaxPrice); ok {
		pipeline = append(pipeline, MatchLTE{Field: "price", Value: max})
	}

	// Sort policy: with a search term the relevance score is projected,
	// and score-descending is the default ordering. An explicit price
	// sort overrides it. With neither term nor sort key the natural
	// store order is returned; that is intentional.
	if q.Search != "" {
		pipeline = append(pipeline, AddScore{})

		if q.SortBy == "" || q.SortBy == SortRelevance {
			pipeline = append(pipeline, Sort{Field: "score", Descending: true})
		}
	}

	if q.SortBy == SortPriceAscending {
		pipeline = append(pipeline, Sort{Field: "price"})
	}

	if q.SortBy == SortPriceDescending {
		pipeline = append(pipeline, Sort{Field: "price", Descending: true})
	}

	return pipeline
}

// appendFilter adds a set-membership stage for a comma-separated filter
// value. Absent values contribute no predicate.
func appendFilter(pipeline []Stage, field, value string) []Stage {
	if value == "" {
		return pipeline
	}
	return append(pipeline, MatchIn{Field: field, Values: strings.Split(value, ",")})
}

func parsePriceBound(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
