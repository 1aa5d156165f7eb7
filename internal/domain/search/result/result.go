package result

import "github.com/kailas-cloud/prodex/internal/domain"

// Hit is a single raw engine row: a product plus the score the engine
// ranked it with (BM25 relevance or cosine similarity, depending on the
// query that produced it).
type Hit struct {
	Product domain.Product
	Score   float64
}

// SearchResult pairs a product with its per-engine score fields.
type SearchResult struct {
	Product domain.Product
	// BM25Score is present only when the lexical engine ran.
	BM25Score *float64
	// VectorScore is present only when the vector engine ran.
	VectorScore *float64
	// CombinedScore equals the single engine score in lexical/vector mode
	// and the 30/70 weighted blend in hybrid mode.
	CombinedScore float64
	// Snippet is reserved for highlighted text; not populated.
	Snippet *string
}

// FacetCount is a (value, count) aggregate row.
type FacetCount struct {
	Value string
	Count int64
}

// PriceBucket is one $50-wide histogram bin.
type PriceBucket struct {
	Min   float64
	Max   float64
	Count int64
}

// RatingBucket is one whole-star rating bin. Ratings are floored, so a
// 4.7-star product lands in the 4-star bin.
type RatingBucket struct {
	Stars int64
	Count int64
}

// Summary holds aggregate statistics scoped to the text predicate.
type Summary struct {
	AvgPrice  float64
	AvgRating float64
}

// Results is the full search response.
//
// TotalCount is exact for lexical search. For vector search it is the
// exact count of rows matching the active filters before pagination; for
// hybrid search it is the count of filtered rows within the fused
// 200-candidate window before pagination. Both are "matching rows, pre
// paging" — hybrid is additionally window-bounded and therefore
// approximate with respect to the whole catalog.
type Results struct {
	Items              []SearchResult
	TotalCount         int64
	CategoryFacets     []FacetCount
	BrandFacets        []FacetCount
	PriceHistogram     []PriceBucket
	RatingDistribution []RatingBucket
	AvgPrice           float64
	AvgRating          float64
}
