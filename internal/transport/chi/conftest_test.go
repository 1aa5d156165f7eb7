package chi

import (
	"context"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/prodex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/prodex/internal/usecase/search"
)

// mockRepo implements searchuc.Repository with overridable functions.
type mockRepo struct {
	lexicalPageFn       func(ctx context.Context, collection, query string, f filter.Filters) ([]result.Hit, error)
	lexicalCountFn      func(ctx context.Context, collection, query string, f filter.Filters) (int64, error)
	lexicalCandidatesFn func(ctx context.Context, collection, query string, k int) ([]result.Hit, error)
	vectorPageFn        func(ctx context.Context, collection string, vector []float32, f filter.Filters) ([]result.Hit, error)
	vectorCountFn       func(ctx context.Context, collection string, f filter.Filters) (int64, error)
	vectorCandidatesFn  func(ctx context.Context, collection string, vector []float32, k int) ([]result.Hit, error)
}

func (m *mockRepo) LexicalPage(
	ctx context.Context, collection, query string, f filter.Filters,
) ([]result.Hit, error) {
	if m.lexicalPageFn != nil {
		return m.lexicalPageFn(ctx, collection, query, f)
	}
	return nil, nil
}

func (m *mockRepo) LexicalCount(
	ctx context.Context, collection, query string, f filter.Filters,
) (int64, error) {
	if m.lexicalCountFn != nil {
		return m.lexicalCountFn(ctx, collection, query, f)
	}
	return 0, nil
}

func (m *mockRepo) LexicalCandidates(
	ctx context.Context, collection, query string, k int,
) ([]result.Hit, error) {
	if m.lexicalCandidatesFn != nil {
		return m.lexicalCandidatesFn(ctx, collection, query, k)
	}
	return nil, nil
}

func (m *mockRepo) VectorPage(
	ctx context.Context, collection string, vector []float32, f filter.Filters,
) ([]result.Hit, error) {
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

func (m *mockRepo) VectorCandidates(
	ctx context.Context, collection string, vector []float32, k int,
) ([]result.Hit, error) {
	if m.vectorCandidatesFn != nil {
		return m.vectorCandidatesFn(ctx, collection, vector, k)
	}
	return nil, nil
}

// mockFacets implements searchuc.FacetReader.
type mockFacets struct {
	categoryFn  func(ctx context.Context, collection, query string) ([]result.FacetCount, error)
	brandFn     func(ctx context.Context, collection, query string) ([]result.FacetCount, error)
	histogramFn func(ctx context.Context, collection, query string) ([]result.PriceBucket, error)
	ratingFn    func(ctx context.Context, collection, query string) ([]result.RatingBucket, error)
	summaryFn   func(ctx context.Context, collection, query string) (result.Summary, error)
}

func (m *mockFacets) CategoryFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error) {
	if m.categoryFn != nil {
		return m.categoryFn(ctx, collection, query)
	}
	return nil, nil
}

func (m *mockFacets) BrandFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error) {
	if m.brandFn != nil {
		return m.brandFn(ctx, collection, query)
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
	if m.ratingFn != nil {
		return m.ratingFn(ctx, collection, query)
	}
	return nil, nil
}

func (m *mockFacets) SummaryStats(ctx context.Context, collection, query string) (result.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, collection, query)
	}
	return result.Summary{}, nil
}

// mockEmbedder implements searchuc.Embedder.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

// mockProducts implements ProductReader.
type mockProducts struct {
	getFn func(ctx context.Context, collection string, id int64) (domain.Product, error)
}

func (m *mockProducts) GetProduct(ctx context.Context, collection string, id int64) (domain.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collection, id)
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// mockPinger implements healthuc.StorePinger.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// newTestRouter wires a Server with the given mocks onto a fresh router.
func newTestRouter(repo *mockRepo, facets *mockFacets, emb *mockEmbedder, products *mockProducts) http.Handler {
	if repo == nil {
		repo = &mockRepo{}
	}
	if facets == nil {
		facets = &mockFacets{}
	}
	if emb == nil {
		emb = &mockEmbedder{}
	}
	if products == nil {
		products = &mockProducts{}
	}

	searchSvc := searchuc.New(repo, facets, emb)
	healthSvc := healthuc.New(&mockPinger{}, nil)

	server := NewServer(searchSvc, products, healthSvc, zap.NewNop())
	r := chirouter.NewRouter()
	server.Routes(r)
	return r
}

func hit(id int64, score float64) result.Hit {
	return result.Hit{
		Product: domain.Product{
			ID:       id,
			Name:     "Product",
			Category: "electronics",
			Price:    49.99,
			Rating:   4.2,
			InStock:  true,
		},
		Score: score,
	}
}
