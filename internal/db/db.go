package db

import (
	"context"
	"time"
)

// Store is the catalog database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	HashReader
	IndexManager
	Searcher
	Aggregator
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashReader reads hash documents by key.
type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SearchCount(ctx context.Context, index, predicate string) (int64, error)
}

// Aggregator runs FT.AGGREGATE pipelines over FT indexes.
type Aggregator interface {
	Aggregate(ctx context.Context, q *AggregateQuery) ([]map[string]string, error)
}
