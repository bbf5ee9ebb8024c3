// internal/domain/product/pagination.go
package product

// PaginatedProducts is the result envelope shared by the listing and
// search endpoints.
type PaginatedProducts struct {
	Count             int64     `json:"count"`
	TotalProductsSeen int64     `json:"totalProductsSeen"`
	Data              []Product `json:"data"`
	NextCursor        *int      `json:"nextCursor,omitempty"`
	HasMore           bool      `json:"hasMore"`
}

// PageWindow appends the skip/limit pair for a zero-based page. The skip
// stage is omitted entirely for page zero, so page 0 and "no page given"
// produce identical pipelines.
func PageWindow(pipeline []Stage, currentPage, pageSize int) []Stage {
	if currentPage != 0 {
		pipeline = append(pipeline, Skip{N: pageSize * currentPage})
	}
	return append(pipeline, Limit{N: pageSize})
}

// PageMeta computes the cursor metadata for a page from the total match
// count taken before windowing.
//
// Skip-based pagination degrades linearly on very large result sets;
// acceptable for the catalog sizes this system targets.
func PageMeta(total int64, currentPage, pageSize int) (totalSeen int64, hasMore bool, nextCursor *int) {
	switch {
	case total == 0:
		totalSeen = 0
	case currentPage != 0:
		totalSeen = int64(pageSize) * int64(currentPage+1)
	default:
		totalSeen = int64(pageSize)
	}

	hasMore = total > totalSeen

	if hasMore {
		next := currentPage + 1
		nextCursor = &next
	}

	return totalSeen, hasMore, nextCursor
}
