package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/prodex/internal/db"
	"github.com/kailas-cloud/prodex/internal/domain"
)

// attributesField holds free-form key/value attributes as a JSON object.
// It is stored but not indexed.
const attributesField = "attributes_json"

// productFields is the RETURN list for search queries: every read-model
// field, never the embedding blob.
var productFields = []string{
	db.FieldName,
	db.FieldDescription,
	db.FieldBrand,
	db.FieldCategory,
	db.FieldSubcategory,
	db.FieldTags,
	db.FieldPrice,
	db.FieldRating,
	db.FieldReviewCount,
	db.FieldStockQuantity,
	db.FieldInStock,
	db.FieldFeatured,
	db.FieldCreatedAt,
	db.FieldUpdatedAt,
	attributesField,
}

// productFromHash hydrates a Product from hash fields. Missing or malformed
// fields degrade to zero values; the import pipeline owns write-side
// validation.
func productFromHash(id int64, m map[string]string) domain.Product {
	p := domain.Product{
		ID:          id,
		Name:        m[db.FieldName],
		Description: m[db.FieldDescription],
		Brand:       m[db.FieldBrand],
		Category:    m[db.FieldCategory],
		Subcategory: m[db.FieldSubcategory],
	}

	if tags := m[db.FieldTags]; tags != "" {
		p.Tags = strings.Split(tags, ",")
	}

	p.Price, _ = strconv.ParseFloat(m[db.FieldPrice], 64)
	p.Rating, _ = strconv.ParseFloat(m[db.FieldRating], 64)
	p.ReviewCount, _ = strconv.Atoi(m[db.FieldReviewCount])
	p.StockQuantity, _ = strconv.Atoi(m[db.FieldStockQuantity])
	p.InStock = m[db.FieldInStock] == "1"
	p.Featured = m[db.FieldFeatured] == "1"

	if raw := m[attributesField]; raw != "" {
		// best effort; nil attributes on bad JSON
		_ = json.Unmarshal([]byte(raw), &p.Attributes)
	}

	if ts, err := strconv.ParseInt(m[db.FieldCreatedAt], 10, 64); err == nil {
		p.CreatedAt = time.Unix(ts, 0).UTC()
	}
	if ts, err := strconv.ParseInt(m[db.FieldUpdatedAt], 10, 64); err == nil {
		p.UpdatedAt = time.Unix(ts, 0).UTC()
	}

	return p
}

// idFromKey extracts the numeric product ID from a full hash key.
func idFromKey(key, prefix string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(key, prefix), 10, 64)
}
