package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	lexicalPageFn       func(ctx context.Context, collection, query string, f filter.Filters) ([]result.Hit, error)
	lexicalCountFn      func(ctx context.Context, collection, query string, f filter.Filters) (int64, error)
	lexicalCandidatesFn func(ctx context.Context, collection, query string, k int) ([]result.Hit, error)
	vectorPageFn        func(ctx context.Context, collection string, vector []float32, f filter.Filters) ([]result.Hit, error)
	vectorCountFn       func(ctx context.Context, collection string, f filter.Filters) (int64, error)
	vectorCandidatesFn  func(ctx context.Context, collection string, vector []float32, k int) ([]result.Hit, error)
}

func (m *mockRepo) LexicalPage(ctx context.Context, collection, query string, f filter.Filters) ([]result.Hit, error) {
	if m.lexicalPageFn != nil {
		return m.lexicalPageFn(ctx, collection, query, f)
	}
	return nil, nil
}

func (m *mockRepo) LexicalCount(ctx context.Context, collection, query string, f filter.Filters) (int64, error) {
	if m.lexicalCountFn != nil {
		return m.lexicalCountFn(ctx, collection, query, f)
	}
	return 0, nil
}

func (m *mockRepo) LexicalCandidates(ctx context.Context, collection, query string, k int) ([]result.Hit, error) {
	if m.lexicalCandidatesFn != nil {
		return m.lexicalCandidatesFn(ctx, collection, query, k)
	}
	return nil, nil
}

func (m *mockRepo) VectorPage(ctx context.Context, collection string, vector []float32, f filter.Filters) ([]result.Hit, error) {
	if m.vectorPageFn != nil {
		return m.vectorPageFn(ctx, collection, vector, f)
	}
	return nil, nil
}

func (m *mockRepo) VectorCount(ctx context.Context, collection string, f filter.Filters) (int64, error) {
	if m.vectorCountFn != nil {
		return m.vectorCountFn(ctx, collection, f)
	}
	return 0, nil
}

func (m *mockRepo) VectorCandidates(ctx context.Context, collection string, vector []float32, k int) ([]result.Hit, error) {
	if m.vectorCandidatesFn != nil {
		return m.vectorCandidatesFn(ctx, collection, vector, k)
	}
	return nil, nil
}

// mockFacets implements FacetReader for tests.
type mockFacets struct {
	categoriesFn func(ctx context.Context, collection, query string) ([]result.FacetCount, error)
	brandsFn     func(ctx context.Context, collection, query string) ([]result.FacetCount, error)
	histogramFn  func(ctx context.Context, collection, query string) ([]result.PriceBucket, error)
	ratingsFn    func(ctx context.Context, collection, query string) ([]result.RatingBucket, error)
	summaryFn    func(ctx context.Context, collection, query string) (result.Summary, error)
}

func (m *mockFacets) CategoryFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx, collection, query)
	}
	return nil, nil
}

func (m *mockFacets) BrandFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error) {
	if m.brandsFn != nil {
		return m.brandsFn(ctx, collection, query)
	}
	return nil, nil
}

func (m *mockFacets) PriceHistogram(ctx context.Context, collection, query string) ([]result.PriceBucket, error) {
	if m.histogramFn != nil {
		return m.histogramFn(ctx, collection, query)
	}
	return nil, nil
}

func (m *mockFacets) RatingDistribution(ctx context.Context, collection, query string) ([]result.RatingBucket, error) {
	if m.ratingsFn != nil {
		return m.ratingsFn(ctx, collection, query)
	}
	return nil, nil
}

func (m *mockFacets) SummaryStats(ctx context.Context, collection, query string) (result.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, collection, query)
	}
	return result.Summary{}, nil
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockFacets, *mockEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	facets := &mockFacets{}
	embed := &mockEmbedder{}
	return New(repo, facets, embed), repo, facets, embed
}

func hit(id int64, score float64) result.Hit {
	return result.Hit{
		Product: domain.Product{ID: id, Category: "electronics", Price: 50, Rating: 4, InStock: true},
		Score:   score,
	}
}
