package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/prodex/internal/db"
	"github.com/kailas-cloud/prodex/internal/domain"
)

// EnsureIndex creates the collection's FT index if it does not exist yet.
// Safe to call on every startup.
func (r *Repo) EnsureIndex(ctx context.Context, collection string) error {
	if !domain.ValidCollectionName(collection) {
		return domain.ErrInvalidCollection
	}

	name := indexName(collection)

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", collection, err)
	}
	if exists {
		return nil
	}

	def, err := productIndex(collection, r.hnsw)
	if err != nil {
		return fmt.Errorf("build index %s: %w", collection, err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// concurrent startup lost the race; the index is there
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", collection, err)
	}
	return nil
}

// productIndex is the catalog schema. SORTABLE fields back both SORTBY
// orders and FT.AGGREGATE grouping.
func productIndex(collection string, hnsw HNSWConfig) (*db.IndexDefinition, error) {
	return db.NewIndex(indexName(collection)).
		Prefix(keyPrefix(collection)).
		Text(db.FieldName).
		Text(db.FieldDescription).
		TextSortable(db.FieldBrand).
		TagSortable(db.FieldCategory).
		Tag(db.FieldSubcategory).
		TagWithSeparator(db.FieldTags, ",").
		NumericSortable(db.FieldPrice).
		NumericSortable(db.FieldRating).
		Numeric(db.FieldReviewCount).
		Numeric(db.FieldStockQuantity).
		Tag(db.FieldInStock).
		Tag(db.FieldFeatured).
		NumericSortable(db.FieldCreatedAt).
		Numeric(db.FieldUpdatedAt).
		VectorHNSW(db.FieldEmbedding, domain.EmbeddingDim, db.DistanceCosine, hnsw.M, hnsw.EFConstruct).
		Build()
}
