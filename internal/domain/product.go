package domain

import (
	"regexp"
	"time"
)

// KeyPrefix namespaces every key and index the service touches.
// Key patterns: prodex:{collection}:{id}, prodex:{collection}:idx.
const KeyPrefix = "prodex:"

// collectionNameRe is the allow-list for collection identifiers. Collection
// names are spliced into key prefixes and index names, so anything outside
// this set is rejected before it reaches the engine.
var collectionNameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// ValidCollectionName reports whether name may be used as a collection
// identifier.
func ValidCollectionName(name string) bool {
	return collectionNameRe.MatchString(name)
}

// EmbeddingDim is the dimensionality of product description embeddings.
// Every stored vector and every query vector must have exactly this length.
const EmbeddingDim = 1536

// Product is a catalog item as seen by the search layer.
//
// Products are written by the import pipeline and read-only here. The
// description embedding lives alongside the hash fields in the store and is
// consumed engine-side by KNN queries; it is never loaded into this struct.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Brand         string
	Category      string
	Subcategory   string // empty = none
	Tags          []string
	Price         float64
	Rating        float64 // 0–5
	ReviewCount   int
	StockQuantity int
	InStock       bool
	Featured      bool
	Attributes    map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
