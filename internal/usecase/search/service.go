package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/mode"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

// DefaultTimeout bounds a whole search request including all sub-queries.
const DefaultTimeout = 10 * time.Second

// Service handles product search across lexical, vector, and hybrid modes.
type Service struct {
	repo    Repository
	facets  FacetReader
	embed   Embedder
	timeout time.Duration
}

// New creates a search service.
func New(repo Repository, facets FacetReader, embed Embedder) *Service {
	return &Service{repo: repo, facets: facets, embed: embed, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-request deadline. Zero disables it.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Search executes a product search in the requested mode.
//
// The query is whitespace-trimmed first; a bare "*" means match-everything
// and is treated identically to an empty query in every mode.
func (s *Service) Search(
	ctx context.Context, collection string, m mode.Mode, query string, f filter.Filters,
) (result.Results, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	query = normalizeQuery(query)

	var (
		res result.Results
		err error
	)
	switch m {
	case mode.Lexical:
		res, err = s.searchLexical(ctx, collection, query, f)
	case mode.Vector:
		res, err = s.searchVector(ctx, collection, query, f)
	case mode.Hybrid:
		res, err = s.searchHybrid(ctx, collection, query, f)
	default:
		return result.Results{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMode, m)
	}
	if err != nil {
		return result.Results{}, classify(err)
	}

	return res, nil
}

// searchLexical fans out rows, count, and facets concurrently. The count
// query carries the exact same predicate as the row query, category filter
// included, so TotalCount always agrees with what paging walks over.
func (s *Service) searchLexical(
	ctx context.Context, collection, query string, f filter.Filters,
) (result.Results, error) {
	var (
		hits  []result.Hit
		total int64
		fs    facetSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hits, err = s.repo.LexicalPage(gctx, collection, query, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.LexicalCount(gctx, collection, query, f)
		return err
	})
	g.Go(func() error {
		var err error
		fs, err = s.collectFacets(gctx, collection, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return result.Results{}, err
	}

	items := make([]result.SearchResult, len(hits))
	for i, h := range hits {
		score := h.Score
		items[i] = result.SearchResult{
			Product:       h.Product,
			BM25Score:     &score,
			CombinedScore: score,
		}
	}

	return fs.into(result.Results{Items: items, TotalCount: total}), nil
}

// searchVector embeds the query, then fans out the KNN page and the
// filter-scoped count. Facets are lexical-only and stay empty here.
func (s *Service) searchVector(
	ctx context.Context, collection, query string, f filter.Filters,
) (result.Results, error) {
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return result.Results{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}

	var (
		hits  []result.Hit
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hits, err = s.repo.VectorPage(gctx, collection, emb.Embedding, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.VectorCount(gctx, collection, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return result.Results{}, err
	}

	items := make([]result.SearchResult, len(hits))
	for i, h := range hits {
		score := h.Score
		items[i] = result.SearchResult{
			Product:       h.Product,
			VectorScore:   &score,
			CombinedScore: score,
		}
	}

	return result.Results{Items: items, TotalCount: total}, nil
}

// searchHybrid retrieves both unfiltered candidate windows and the facets
// concurrently, fuses by product ID, filters the fused set in memory, then
// pages it. TotalCount is the filtered candidate count before paging and is
// bounded by the two windows.
func (s *Service) searchHybrid(
	ctx context.Context, collection, query string, f filter.Filters,
) (result.Results, error) {
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return result.Results{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}

	var (
		lexical []result.Hit
		vector  []result.Hit
		fs      facetSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lexical, err = s.repo.LexicalCandidates(gctx, collection, query, candidateWindow)
		return err
	})
	g.Go(func() error {
		var err error
		vector, err = s.repo.VectorCandidates(gctx, collection, emb.Embedding, candidateWindow)
		return err
	})
	g.Go(func() error {
		var err error
		fs, err = s.collectFacets(gctx, collection, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return result.Results{}, err
	}

	fused := fuseWeighted(lexical, vector)

	filtered := fused[:0]
	for _, item := range fused {
		if matchesFilters(item.Product, f) {
			filtered = append(filtered, item)
		}
	}

	return fs.into(result.Results{
		Items:      paginate(filtered, f),
		TotalCount: int64(len(filtered)),
	}), nil
}

// facetSet carries the outcome of the five facet aggregations.
type facetSet struct {
	categories []result.FacetCount
	brands     []result.FacetCount
	histogram  []result.PriceBucket
	ratings    []result.RatingBucket
	summary    result.Summary
}

// collectFacets runs the five aggregations concurrently.
func (s *Service) collectFacets(ctx context.Context, collection, query string) (facetSet, error) {
	var fs facetSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fs.categories, err = s.facets.CategoryFacets(gctx, collection, query)
		return err
	})
	g.Go(func() error {
		var err error
		fs.brands, err = s.facets.BrandFacets(gctx, collection, query)
		return err
	})
	g.Go(func() error {
		var err error
		fs.histogram, err = s.facets.PriceHistogram(gctx, collection, query)
		return err
	})
	g.Go(func() error {
		var err error
		fs.ratings, err = s.facets.RatingDistribution(gctx, collection, query)
		return err
	})
	g.Go(func() error {
		var err error
		fs.summary, err = s.facets.SummaryStats(gctx, collection, query)
		return err
	})

	return fs, g.Wait()
}

func (fs facetSet) into(r result.Results) result.Results {
	r.CategoryFacets = fs.categories
	r.BrandFacets = fs.brands
	r.PriceHistogram = fs.histogram
	r.RatingDistribution = fs.ratings
	r.AvgPrice = fs.summary.AvgPrice
	r.AvgRating = fs.summary.AvgRating
	return r
}

// normalizeQuery trims the query and folds the conventional match-all
// wildcard into the empty query.
func normalizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if q == "*" {
		return ""
	}
	return q
}

// classify maps internal failures onto the caller-facing error taxonomy.
// Store and engine failures become an opaque "search failed"; validation
// and provider errors pass through.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCollection),
		errors.Is(err, domain.ErrEmbeddingProviderError):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}
}
