package catalog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/prodex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hGetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	searchTextFn  func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index, predicate string) (int64, error)
	aggregateFn   func(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, predicate string) (int64, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, predicate)
	}
	return 0, nil
}

func (m *mockStore) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

// productHash builds a minimal stored product for reply fixtures.
func productHash(name, category, price string) map[string]string {
	return map[string]string{
		"name":        name,
		"description": "test item",
		"brand":       "acme",
		"category":    category,
		"price":       price,
		"rating":      "4.5",
		"in_stock":    "1",
		"created_at":  "1700000000",
	}
}
