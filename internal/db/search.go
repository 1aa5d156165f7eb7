package db

// ScoreAlias is the field alias KNN queries bind the vector distance to.
const ScoreAlias = "__score"

// TextQuery is the input for a BM25-scored FT.SEARCH.
type TextQuery struct {
	IndexName string
	// Predicate is a complete query string (text and/or filter parts),
	// built with the predicate helpers in this package.
	Predicate string
	// SortBy overrides relevance ordering when non-empty.
	SortBy       string
	SortAsc      bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// KNNQuery is the input for a vector similarity FT.SEARCH.
type KNNQuery struct {
	IndexName string
	// Predicate pre-filters the candidate set; empty means all rows.
	Predicate string
	Vector    []float32
	// K is the size of the nearest-neighbor window; must cover Offset+Limit.
	K            int
	Offset       int
	Limit        int
	ReturnFields []string
}

// Reducer is a single REDUCE step of an FT.AGGREGATE GROUPBY.
type Reducer struct {
	Function string // COUNT, AVG, ...
	Args     []string
	As       string
}

// AggregateQuery is the input for an FT.AGGREGATE pipeline.
// Steps are applied in struct order: LOAD, APPLY, GROUPBY/REDUCE, SORTBY,
// LIMIT.
type AggregateQuery struct {
	IndexName string
	Predicate string
	Load      []string
	// ApplyExpr/ApplyAs add a computed attribute before grouping.
	ApplyExpr string
	ApplyAs   string
	GroupBy   []string
	Reducers  []Reducer
	SortBy    string
	SortAsc   bool
	Limit     int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int64
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
