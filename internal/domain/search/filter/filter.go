// Package filter holds the request-scoped search constraints.
//
// Filters is deliberately a plain data holder: no validation is performed
// and malformed ranges (min > max) pass through to the query layer, which
// simply matches nothing. One instance per request, never mutated after
// construction.
package filter

// SortBy selects the result ordering for lexical search.
type SortBy string

// Sort order constants.
const (
	// Relevance sorts by the engine's native relevance score, descending.
	Relevance SortBy = "relevance"
	PriceAsc  SortBy = "price_asc"
	PriceDesc SortBy = "price_desc"
	// RatingDesc sorts by rating, descending.
	RatingDesc SortBy = "rating_desc"
	// Newest sorts by creation time, descending.
	Newest SortBy = "newest"
)

// IsValid checks if the sort order is one of the supported values.
func (s SortBy) IsValid() bool {
	switch s {
	case Relevance, PriceAsc, PriceDesc, RatingDesc, Newest:
		return true
	}
	return false
}

// Filters describes the non-text constraints of a search request.
//
// The zero value means: no category filter, no price bounds, no minimum
// rating, out-of-stock items included, relevance order, first page with a
// zero page size. Callers must set an explicit PageSize or pagination
// degenerates to an empty page.
type Filters struct {
	// Categories is an allow-list; empty means no category filter,
	// never "match none".
	Categories []string
	// PriceMin and PriceMax are inclusive bounds; nil means unbounded.
	PriceMin *float64
	PriceMax *float64
	// MinRating is an inclusive lower bound; nil means unbounded.
	MinRating *float64
	// InStockOnly excludes out-of-stock items only when set. When unset,
	// out-of-stock items are returned as usual.
	InStockOnly bool
	SortBy      SortBy
	// Page is zero-indexed.
	Page     int
	PageSize int
}

// Offset returns the row offset implied by the page settings.
func (f Filters) Offset() int {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return f.Page * f.PageSize
}

// Sort returns the effective sort order: the zero value falls back to
// relevance ordering.
func (f Filters) Sort() SortBy {
	if f.SortBy == "" {
		return Relevance
	}
	return f.SortBy
}
