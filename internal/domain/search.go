package domain

// SortKey is the client-facing sort selector for property searches.
type SortKey string

const (
	SortPriceLowHigh SortKey = "priceLowHigh"
	SortPriceHighLow SortKey = "priceHighLow"
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortAreaLowHigh  SortKey = "areaLowHigh"
	SortAreaHighLow  SortKey = "areaHighLow"
)

// SortOrder is a storage-agnostic sort description.
type SortOrder struct {
	Field string
	Desc  bool
}

// Order maps a sort key to its order. Unrecognized or empty keys fall back
// to newest first.
func (k SortKey) Order() SortOrder {
	switch k {
	case SortPriceLowHigh:
		return SortOrder{Field: "price"}
	case SortPriceHighLow:
		return SortOrder{Field: "price", Desc: true}
	case SortOldest:
		return SortOrder{Field: "createdAt"}
	case SortAreaLowHigh:
		return SortOrder{Field: "area"}
	case SortAreaHighLow:
		return SortOrder{Field: "area", Desc: true}
	default:
		return SortOrder{Field: "createdAt", Desc: true}
	}
}

// PropertyFilter is the normalized set of optional search criteria. Nil
// fields were absent or unparseable in the request; structured filters are
// AND'd together, the free-text term is a separate AND'd clause.
type PropertyFilter struct {
	MinPrice  *float64
	MaxPrice  *float64
	Location  *string
	Type      *PropertyType
	Bedrooms  *int
	Bathrooms *int
	MinArea   *float64
	MaxArea   *float64
	Amenities []string
	Search    *string
	Sort      SortKey
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps out-of-range inputs to page 1 / the caller's default limit.
func NewPage(number, limit, defaultLimit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Offset() int64 { return int64(p.Number-1) * int64(p.Limit) }

// Pagination is the envelope returned alongside every list result.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	Limit           int   `json:"limit"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewPagination computes the envelope for a page over total matches.
// Zero matches yields zero pages and both flags false.
func NewPagination(p Page, total int64) Pagination {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		CurrentPage:     p.Number,
		TotalPages:      pages,
		TotalCount:      total,
		Limit:           p.Limit,
		HasPreviousPage: p.Number > 1,
		HasNextPage:     p.Number < pages,
	}
}
