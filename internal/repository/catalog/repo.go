package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/prodex/internal/db"
	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

// store is the consumer interface for catalog queries (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, predicate string) (int64, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements usecase/search.Repository and usecase/search.FacetReader.
type Repo struct {
	store store
	hnsw  HNSWConfig
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s, hnsw: HNSWConfig{M: 16, EFConstruct: 200}}
}

// WithHNSW configures HNSW index parameters used by EnsureIndex.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// LexicalPage returns one page of BM25-ranked rows matching the query text
// and every active filter.
func (r *Repo) LexicalPage(ctx context.Context, collection, query string, f filter.Filters) ([]result.Hit, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	sortField, sortAsc := db.SortField(f.Sort())
	q := &db.TextQuery{
		IndexName:    indexName(collection),
		Predicate:    db.CombinePredicates(db.TextPredicate(query), db.FilterPredicate(f)),
		SortBy:       sortField,
		SortAsc:      sortAsc,
		Offset:       f.Offset(),
		Limit:        f.PageSize,
		ReturnFields: productFields,
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search text %s: %w", collection, err)
	}

	return parseHits(sr, collection)
}

// LexicalCount returns the exact number of rows matching the query text and
// every active filter, before pagination.
func (r *Repo) LexicalCount(ctx context.Context, collection, query string, f filter.Filters) (int64, error) {
	if !domain.ValidCollectionName(collection) {
		return 0, domain.ErrInvalidCollection
	}

	predicate := db.CombinePredicates(db.TextPredicate(query), db.FilterPredicate(f))
	total, err := r.store.SearchCount(ctx, indexName(collection), predicate)
	if err != nil {
		return 0, fmt.Errorf("count text %s: %w", collection, err)
	}
	return total, nil
}

// LexicalCandidates returns the top-k BM25 rows for the query text alone,
// with no filters applied. Used as the lexical half of hybrid fusion.
func (r *Repo) LexicalCandidates(ctx context.Context, collection, query string, k int) ([]result.Hit, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	q := &db.TextQuery{
		IndexName:    indexName(collection),
		Predicate:    db.TextPredicate(query),
		Limit:        k,
		ReturnFields: productFields,
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search text %s: %w", collection, err)
	}

	return parseHits(sr, collection)
}

// VectorPage returns one page of similarity-ranked rows. Filters become the
// KNN pre-filter, so k only has to cover the requested page.
func (r *Repo) VectorPage(ctx context.Context, collection string, vector []float32, f filter.Filters) ([]result.Hit, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	// A zero page size is a degenerate empty page, same as the LIMIT 0 0
	// behavior of the lexical path. KNN rejects k=0, so never issue it.
	if f.PageSize <= 0 {
		return nil, nil
	}

	q := &db.KNNQuery{
		IndexName:    indexName(collection),
		Predicate:    db.FilterPredicate(f),
		Vector:       vector,
		K:            f.Offset() + f.PageSize,
		Offset:       f.Offset(),
		Limit:        f.PageSize,
		ReturnFields: productFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collection, err)
	}

	return parseHits(sr, collection)
}

// VectorCount returns the exact number of rows matching the active filters.
// Similarity does not narrow the match set, so the count is filter-scoped.
func (r *Repo) VectorCount(ctx context.Context, collection string, f filter.Filters) (int64, error) {
	if !domain.ValidCollectionName(collection) {
		return 0, domain.ErrInvalidCollection
	}

	predicate := db.CombinePredicates(db.FilterPredicate(f))
	total, err := r.store.SearchCount(ctx, indexName(collection), predicate)
	if err != nil {
		return 0, fmt.Errorf("count knn %s: %w", collection, err)
	}
	return total, nil
}

// VectorCandidates returns the k nearest rows over the whole collection,
// with no filters applied. Used as the vector half of hybrid fusion.
func (r *Repo) VectorCandidates(ctx context.Context, collection string, vector []float32, k int) ([]result.Hit, error) {
	if !domain.ValidCollectionName(collection) {
		return nil, domain.ErrInvalidCollection
	}

	q := &db.KNNQuery{
		IndexName:    indexName(collection),
		Vector:       vector,
		K:            k,
		Limit:        k,
		ReturnFields: productFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collection, err)
	}

	return parseHits(sr, collection)
}

// GetProduct reads a single product by ID via HGETALL.
func (r *Repo) GetProduct(ctx context.Context, collection string, id int64) (domain.Product, error) {
	if !domain.ValidCollectionName(collection) {
		return domain.Product{}, domain.ErrInvalidCollection
	}

	m, err := r.store.HGetAll(ctx, productKey(collection, id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("hgetall product %s/%d: %w", collection, id, err)
	}

	return productFromHash(id, m), nil
}

// parseHits converts db.SearchResult rows into repository hits.
func parseHits(sr *db.SearchResult, collection string) ([]result.Hit, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	prefix := keyPrefix(collection)
	hits := make([]result.Hit, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id, err := idFromKey(entry.Key, prefix)
		if err != nil {
			return nil, fmt.Errorf("parse key %s: %w", entry.Key, err)
		}
		hits = append(hits, result.Hit{
			Product: productFromHash(id, entry.Fields),
			Score:   entry.Score,
		})
	}

	return hits, nil
}

// Key patterns: prodex:{collection}:{id}, prodex:{collection}:idx

func indexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collection)
}

func keyPrefix(collection string) string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, collection)
}

func productKey(collection string, id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix(collection), id)
}
