package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/prodex/internal/db"
	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

// Facet aggregations run under the text predicate only: they describe the
// lexical match set before filters narrow it, so the UI can render filter
// options alongside filtered rows.

const (
	// priceBucketWidth is the histogram bucket size in currency units.
	priceBucketWidth = 50.0
	// brandFacetLimit caps the brand facet at the most frequent brands.
	brandFacetLimit = 20
	// facetRowLimit is "effectively unbounded" for group counts; FT.AGGREGATE
	// defaults to LIMIT 0 10 otherwise.
	facetRowLimit = 10000
)

// CategoryFacets returns per-category match counts, most frequent first.
func (r *Repo) CategoryFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: indexName(collection),
		Predicate: db.TextPredicate(query),
		GroupBy:   []string{db.FieldCategory},
		Reducers:  []db.Reducer{{Function: "COUNT", As: "count"}},
		SortBy:    "count",
		Limit:     facetRowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate categories %s: %w", collection, err)
	}

	return facetCounts(rows, db.FieldCategory), nil
}

// BrandFacets returns match counts for the top brands, most frequent first.
func (r *Repo) BrandFacets(ctx context.Context, collection, query string) ([]result.FacetCount, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: indexName(collection),
		Predicate: db.TextPredicate(query),
		GroupBy:   []string{db.FieldBrand},
		Reducers:  []db.Reducer{{Function: "COUNT", As: "count"}},
		SortBy:    "count",
		Limit:     brandFacetLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate brands %s: %w", collection, err)
	}

	return facetCounts(rows, db.FieldBrand), nil
}

// PriceHistogram returns match counts per fixed-width price bucket,
// cheapest bucket first. Bucket bounds are [Min, Min+width).
func (r *Repo) PriceHistogram(ctx context.Context, collection, query string) ([]result.PriceBucket, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: indexName(collection),
		Predicate: db.TextPredicate(query),
		ApplyExpr: fmt.Sprintf("floor(@%s/%g)*%g", db.FieldPrice, priceBucketWidth, priceBucketWidth),
		ApplyAs:   "bucket",
		GroupBy:   []string{"bucket"},
		Reducers:  []db.Reducer{{Function: "COUNT", As: "count"}},
		SortBy:    "bucket",
		SortAsc:   true,
		Limit:     facetRowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate price histogram %s: %w", collection, err)
	}

	buckets := make([]result.PriceBucket, 0, len(rows))
	for _, row := range rows {
		lo, err := strconv.ParseFloat(row["bucket"], 64)
		if err != nil {
			continue
		}
		count, _ := strconv.ParseInt(row["count"], 10, 64)
		buckets = append(buckets, result.PriceBucket{
			Min:   lo,
			Max:   lo + priceBucketWidth,
			Count: count,
		})
	}
	return buckets, nil
}

// RatingDistribution returns match counts per whole-star rating, lowest
// star first. Ratings are floored into their bin.
func (r *Repo) RatingDistribution(ctx context.Context, collection, query string) ([]result.RatingBucket, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: indexName(collection),
		Predicate: db.TextPredicate(query),
		ApplyExpr: fmt.Sprintf("floor(@%s)", db.FieldRating),
		ApplyAs:   "stars",
		GroupBy:   []string{"stars"},
		Reducers:  []db.Reducer{{Function: "COUNT", As: "count"}},
		SortBy:    "stars",
		SortAsc:   true,
		Limit:     facetRowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate rating distribution %s: %w", collection, err)
	}

	buckets := make([]result.RatingBucket, 0, len(rows))
	for _, row := range rows {
		stars, err := strconv.ParseFloat(row["stars"], 64)
		if err != nil {
			continue
		}
		count, _ := strconv.ParseInt(row["count"], 10, 64)
		buckets = append(buckets, result.RatingBucket{Stars: int64(stars), Count: count})
	}
	return buckets, nil
}

// SummaryStats returns average price and rating over the lexical match set.
func (r *Repo) SummaryStats(ctx context.Context, collection, query string) (result.Summary, error) {
	if !domain.ValidCollectionName(collection) {
		return result.Summary{}, domain.ErrInvalidCollection
	}

	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: indexName(collection),
		Predicate: db.TextPredicate(query),
		Reducers: []db.Reducer{
			{Function: "AVG", Args: []string{db.FieldPrice}, As: "avg_price"},
			{Function: "AVG", Args: []string{db.FieldRating}, As: "avg_rating"},
		},
	})
	if err != nil {
		return result.Summary{}, fmt.Errorf("aggregate summary %s: %w", collection, err)
	}
	if len(rows) == 0 {
		return result.Summary{}, nil
	}

	var s result.Summary
	s.AvgPrice, _ = strconv.ParseFloat(rows[0]["avg_price"], 64)
	s.AvgRating, _ = strconv.ParseFloat(rows[0]["avg_rating"], 64)
	return s, nil
}

func facetCounts(rows []map[string]string, field string) []result.FacetCount {
	counts := make([]result.FacetCount, 0, len(rows))
	for _, row := range rows {
		value := row[field]
		if value == "" {
			continue
		}
		count, _ := strconv.ParseInt(row["count"], 10, 64)
		counts = append(counts, result.FacetCount{Value: value, Count: count})
	}
	return counts
}
