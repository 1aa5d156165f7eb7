package search

import (
	"context"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	// LexicalPage returns one page of BM25-ranked rows under text + filters.
	LexicalPage(ctx context.Context, collection, query string, f filter.Filters) ([]result.Hit, error)
	// LexicalCount counts rows under text + filters, pre-pagination.
	LexicalCount(ctx context.Context, collection, query string, f filter.Filters) (int64, error)
	// LexicalCandidates returns the unfiltered top-k BM25 rows for fusion.
	LexicalCandidates(ctx context.Context, collection, query string, k int) ([]result.Hit, error)

	// VectorPage returns one page of similarity-ranked rows under filters.
	VectorPage(ctx context.Context, collection string, vector []float32, f filter.Filters) ([]result.Hit, error)
	// VectorCount counts rows matching the filters, pre-pagination.
	VectorCount(ctx context.Context, collection string, f filter.Filters) (int64, error)
	// VectorCandidates returns the unfiltered k nearest rows for fusion.
	VectorCandidates(ctx context.Context, collection string, vector []float32, k int) ([]result.Hit, error)
}

// FacetReader aggregates facets over the lexical match set.
type FacetReader interface {
	CategoryFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error)
	BrandFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error)
	PriceHistogram(ctx context.Context, collection, query string) ([]result.PriceBucket, error)
	RatingDistribution(ctx context.Context, collection, query string) ([]result.RatingBucket, error)
	SummaryStats(ctx context.Context, collection, query string) (result.Summary, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
