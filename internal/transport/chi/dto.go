package chi

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/mode"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

// Pagination defaults for the search endpoint.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// errorCode is the machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeInvalidCollection      errorCode = "invalid_collection"
	codeProductNotFound        errorCode = "product_not_found"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeSearchFailed           errorCode = "search_failed"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// searchRequest is the POST /collections/{collection}/search body.
type searchRequest struct {
	Query    string         `json:"query"`
	Mode     string         `json:"mode"`
	Filters  *searchFilters `json:"filters"`
	SortBy   string         `json:"sort_by"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type searchFilters struct {
	Categories  []string `json:"categories"`
	PriceMin    *float64 `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
	MinRating   *float64 `json:"min_rating"`
	InStockOnly bool     `json:"in_stock_only"`
}

type productResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category"`
	Subcategory   string            `json:"subcategory,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Price         float64           `json:"price"`
	Rating        float64           `json:"rating"`
	ReviewCount   int               `json:"review_count"`
	StockQuantity int               `json:"stock_quantity"`
	InStock       bool              `json:"in_stock"`
	Featured      bool              `json:"featured"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type searchResultItem struct {
	Product       productResponse `json:"product"`
	BM25Score     *float64        `json:"bm25_score,omitempty"`
	VectorScore   *float64        `json:"vector_score,omitempty"`
	CombinedScore float64         `json:"combined_score"`
	Snippet       *string         `json:"snippet,omitempty"`
}

type facetCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type priceBucket struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

type ratingBucket struct {
	Stars int64 `json:"stars"`
	Count int64 `json:"count"`
}

type facetsResponse struct {
	Categories         []facetCount   `json:"categories"`
	Brands             []facetCount   `json:"brands"`
	PriceHistogram     []priceBucket  `json:"price_histogram"`
	RatingDistribution []ratingBucket `json:"rating_distribution"`
	AvgPrice           float64        `json:"avg_price"`
	AvgRating          float64        `json:"avg_rating"`
}

type searchResponse struct {
	Items      []searchResultItem `json:"items"`
	TotalCount int64              `json:"total_count"`
	Facets     facetsResponse     `json:"facets"`
	Mode       string             `json:"mode"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// filtersFromRequest maps the request body onto domain filters. Validation
// errors are returned as-is for a 400 with the message verbatim.
func filtersFromRequest(req searchRequest) (filter.Filters, error) {
	f := filter.Filters{
		SortBy:   filter.SortBy(req.SortBy),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if req.SortBy != "" && !f.SortBy.IsValid() {
		return filter.Filters{}, fmt.Errorf("unsupported sort order: %q", req.SortBy)
	}
	if req.Page < 0 {
		return filter.Filters{}, fmt.Errorf("page must not be negative, got %d", req.Page)
	}
	if req.PageSize < 0 {
		return filter.Filters{}, fmt.Errorf("page_size must not be negative, got %d", req.PageSize)
	}

	if f.PageSize == 0 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	if req.Filters != nil {
		f.Categories = req.Filters.Categories
		f.PriceMin = req.Filters.PriceMin
		f.PriceMax = req.Filters.PriceMax
		f.MinRating = req.Filters.MinRating
		f.InStockOnly = req.Filters.InStockOnly
	}

	return f, nil
}

// modeFromRequest resolves the search mode; empty defaults to lexical.
func modeFromRequest(raw string) (mode.Mode, error) {
	if raw == "" {
		return mode.Lexical, nil
	}
	m := mode.Mode(raw)
	if !m.IsValid() {
		return "", fmt.Errorf("unsupported search mode: %q", raw)
	}
	return m, nil
}

func productToResponse(p domain.Product) productResponse {
	return productResponse{
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

func resultsToResponse(res result.Results, m mode.Mode, f filter.Filters) searchResponse {
	items := make([]searchResultItem, len(res.Items))
	for i, it := range res.Items {
		items[i] = searchResultItem{
			Product:       productToResponse(it.Product),
			BM25Score:     it.BM25Score,
			VectorScore:   it.VectorScore,
			CombinedScore: it.CombinedScore,
			Snippet:       it.Snippet,
		}
	}

	facets := facetsResponse{
		Categories:         make([]facetCount, len(res.CategoryFacets)),
		Brands:             make([]facetCount, len(res.BrandFacets)),
		PriceHistogram:     make([]priceBucket, len(res.PriceHistogram)),
		RatingDistribution: make([]ratingBucket, len(res.RatingDistribution)),
		AvgPrice:           res.AvgPrice,
		AvgRating:          res.AvgRating,
	}
	for i, fc := range res.CategoryFacets {
		facets.Categories[i] = facetCount{Value: fc.Value, Count: fc.Count}
	}
	for i, fc := range res.BrandFacets {
		facets.Brands[i] = facetCount{Value: fc.Value, Count: fc.Count}
	}
	for i, b := range res.PriceHistogram {
		facets.PriceHistogram[i] = priceBucket{Min: b.Min, Max: b.Max, Count: b.Count}
	}
	for i, b := range res.RatingDistribution {
		facets.RatingDistribution[i] = ratingBucket{Stars: b.Stars, Count: b.Count}
	}

	return searchResponse{
		Items:      items,
		TotalCount: res.TotalCount,
		Facets:     facets,
		Mode:       string(m),
		Page:       f.Page,
		PageSize:   f.PageSize,
	}
}
