package db

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
)

// Product index field names. The db layer owns the index vocabulary the
// same way it owns the FT.SEARCH syntax built from it.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldBrand         = "brand"
	FieldCategory      = "category"
	FieldSubcategory   = "subcategory"
	FieldTags          = "tags"
	FieldPrice         = "price"
	FieldRating        = "rating"
	FieldReviewCount   = "review_count"
	FieldStockQuantity = "stock_quantity"
	FieldInStock       = "in_stock"
	FieldFeatured      = "featured"
	FieldCreatedAt     = "created_at"
	FieldUpdatedAt     = "updated_at"
	FieldEmbedding     = "embedding"
)

// TextPredicate builds the lexical match predicate over the text fields
// (name, description, brand). An empty query matches everything.
//
// Callers must normalize "*" to "" before reaching this function; the
// wildcard rule is applied in the search service, not delegated to engine
// semantics.
func TextPredicate(query string) string {
	if query == "" {
		return "*"
	}
	return fmt.Sprintf("@%s|%s|%s:(%s)",
		FieldName, FieldDescription, FieldBrand, escapeQuery(query))
}

// FilterPredicate builds the conjunctive non-text predicate from the
// request filters. Returns "" when no filter is active.
//
// Bounds are inclusive. An empty category set produces no category clause
// (never "match none"). The in-stock clause is emitted only when requested,
// so its absence never filters out-of-stock rows.
func FilterPredicate(f filter.Filters) string {
	var parts []string

	if f.PriceMin != nil || f.PriceMax != nil {
		parts = append(parts, numericRange(FieldPrice, f.PriceMin, f.PriceMax))
	}
	if len(f.Categories) > 0 {
		parts = append(parts, tagAnyOf(FieldCategory, f.Categories))
	}
	if f.MinRating != nil {
		parts = append(parts, numericRange(FieldRating, f.MinRating, nil))
	}
	if f.InStockOnly {
		parts = append(parts, fmt.Sprintf("@%s:{1}", FieldInStock))
	}

	return strings.Join(parts, " ")
}

// CombinePredicates joins non-empty predicate parts conjunctively,
// falling back to the match-all query when nothing remains.
func CombinePredicates(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" && p != "*" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "*"
	}
	return strings.Join(kept, " ")
}

// SortField maps a sort order onto an index field; relevance has no field
// (engine score order).
func SortField(s filter.SortBy) (field string, asc bool) {
	switch s {
	case filter.PriceAsc:
		return FieldPrice, true
	case filter.PriceDesc:
		return FieldPrice, false
	case filter.RatingDesc:
		return FieldRating, false
	case filter.Newest:
		return FieldCreatedAt, false
	default:
		return "", false
	}
}

func numericRange(field string, min, max *float64) string {
	lo := "-inf"
	hi := "+inf"
	if min != nil {
		lo = fmt.Sprintf("%g", *min)
	}
	if max != nil {
		hi = fmt.Sprintf("%g", *max)
	}
	return fmt.Sprintf("@%s:[%s %s]", field, lo, hi)
}

func tagAnyOf(field string, values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(escaped, "|"))
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
