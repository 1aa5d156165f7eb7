package prodex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/mode"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
	"github.com/kailas-cloud/prodex/internal/repository/catalog"
	searchuc "github.com/kailas-cloud/prodex/internal/usecase/search"
)

// Mode is the search ranking strategy.
type Mode string

// Search mode constants.
const (
	Lexical Mode = "lexical"
	Vector  Mode = "vector"
	Hybrid  Mode = "hybrid"
)

// SortBy selects the result ordering for lexical search.
type SortBy string

// Sort order constants.
const (
	Relevance  SortBy = "relevance"
	PriceAsc   SortBy = "price_asc"
	PriceDesc  SortBy = "price_desc"
	RatingDesc SortBy = "rating_desc"
	Newest     SortBy = "newest"
)

// Filters describes the non-text constraints of a search query.
type Filters struct {
	Categories  []string
	PriceMin    *float64
	PriceMax    *float64
	MinRating   *float64
	InStockOnly bool
	SortBy      SortBy
	Page        int
	PageSize    int
}

// Product is a catalog item.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Brand         string
	Category      string
	Subcategory   string
	Tags          []string
	Price         float64
	Rating        float64
	ReviewCount   int
	StockQuantity int
	InStock       bool
	Featured      bool
	Attributes    map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SearchResult pairs a product with its per-mode scores.
type SearchResult struct {
	Product       Product
	BM25Score     *float64
	VectorScore   *float64
	CombinedScore float64
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

// RatingBucket is one whole-star rating bin.
type RatingBucket struct {
	Stars int64
	Count int64
}

// Results is the full search response.
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

// SearchService executes search queries against a single collection.
type SearchService struct {
	collection string
	svc        *searchuc.Service
	repo       *catalog.Repo
}

// Query executes a product search. An empty or "*" query matches everything.
func (s *SearchService) Query(ctx context.Context, query string, m Mode, f Filters) (Results, error) {
	if m == "" {
		m = Lexical
	}

	res, err := s.svc.Search(ctx, s.collection, mode.Mode(m), query, toInternalFilters(f))
	if err != nil {
		return Results{}, fmt.Errorf("query: %w", err)
	}
	return fromResults(res), nil
}

// GetProduct fetches a single product by ID.
func (s *SearchService) GetProduct(ctx context.Context, id int64) (Product, error) {
	p, err := s.repo.GetProduct(ctx, s.collection, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return fromProduct(p), nil
}

// EnsureIndex creates the collection's search index if it does not exist.
func (s *SearchService) EnsureIndex(ctx context.Context) error {
	if err := s.repo.EnsureIndex(ctx, s.collection); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	return nil
}

func toInternalFilters(f Filters) filter.Filters {
	return filter.Filters{
		Categories:  f.Categories,
		PriceMin:    f.PriceMin,
		PriceMax:    f.PriceMax,
		MinRating:   f.MinRating,
		InStockOnly: f.InStockOnly,
		SortBy:      filter.SortBy(f.SortBy),
		Page:        f.Page,
		PageSize:    f.PageSize,
	}
}

func fromProduct(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Brand:         p.Brand,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Tags:          p.Tags,
		Price:         p.Price,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		StockQuantity: p.StockQuantity,
		InStock:       p.InStock,
		Featured:      p.Featured,
		Attributes:    p.Attributes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromResults(r result.Results) Results {
	items := make([]SearchResult, len(r.Items))
	for i, it := range r.Items {
		items[i] = SearchResult{
			Product:       fromProduct(it.Product),
			BM25Score:     it.BM25Score,
			VectorScore:   it.VectorScore,
			CombinedScore: it.CombinedScore,
		}
	}

	categories := make([]FacetCount, len(r.CategoryFacets))
	for i, fc := range r.CategoryFacets {
		categories[i] = FacetCount{Value: fc.Value, Count: fc.Count}
	}
	brands := make([]FacetCount, len(r.BrandFacets))
	for i, fc := range r.BrandFacets {
		brands[i] = FacetCount{Value: fc.Value, Count: fc.Count}
	}
	histogram := make([]PriceBucket, len(r.PriceHistogram))
	for i, b := range r.PriceHistogram {
		histogram[i] = PriceBucket{Min: b.Min, Max: b.Max, Count: b.Count}
	}
	ratings := make([]RatingBucket, len(r.RatingDistribution))
	for i, b := range r.RatingDistribution {
		ratings[i] = RatingBucket{Stars: b.Stars, Count: b.Count}
	}

	return Results{
		Items:              items,
		TotalCount:         r.TotalCount,
		CategoryFacets:     categories,
		BrandFacets:        brands,
		PriceHistogram:     histogram,
		RatingDistribution: ratings,
		AvgPrice:           r.AvgPrice,
		AvgRating:          r.AvgRating,
	}
}
