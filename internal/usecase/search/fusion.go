package search

import (
	"sort"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
)

const (
	// candidateWindow is the depth of each retrieval arm feeding fusion.
	candidateWindow = 100

	// Fixed blend weights. Vector similarity dominates because BM25 scores
	// are unbounded and noisy across collections.
	bm25Weight   = 0.3
	vectorWeight = 0.7
)

// fuseWeighted merges the two candidate lists with a full outer join on
// product ID. A product missing from one arm contributes 0 for that arm's
// score but keeps the per-engine pointer nil, so callers can tell "scored
// zero" from "not retrieved".
//
// Output is ordered by combined score descending; exact ties break by
// ascending product ID so pagination over the fused list is deterministic.
func fuseWeighted(lexical, vector []result.Hit) []result.SearchResult {
	merged := make(map[int64]*result.SearchResult, len(lexical)+len(vector))

	for _, h := range lexical {
		score := h.Score
		merged[h.Product.ID] = &result.SearchResult{
			Product:   h.Product,
			BM25Score: &score,
		}
	}

	for _, h := range vector {
		score := h.Score
		if existing, ok := merged[h.Product.ID]; ok {
			existing.VectorScore = &score
			continue
		}
		merged[h.Product.ID] = &result.SearchResult{
			Product:     h.Product,
			VectorScore: &score,
		}
	}

	fused := make([]result.SearchResult, 0, len(merged))
	for _, item := range merged {
		var bm25, vec float64
		if item.BM25Score != nil {
			bm25 = *item.BM25Score
		}
		if item.VectorScore != nil {
			vec = *item.VectorScore
		}
		item.CombinedScore = bm25Weight*bm25 + vectorWeight*vec
		fused = append(fused, *item)
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].CombinedScore != fused[j].CombinedScore {
			return fused[i].CombinedScore > fused[j].CombinedScore
		}
		return fused[i].Product.ID < fused[j].Product.ID
	})

	return fused
}

// matchesFilters applies the request filters to a fused candidate. It
// mirrors db.FilterPredicate: inclusive bounds, empty category list matches
// everything, in-stock only narrows when requested.
func matchesFilters(p domain.Product, f filter.Filters) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, p.Category) {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	return true
}

// paginate slices one page out of the fused, filtered, ordered list.
func paginate(items []result.SearchResult, f filter.Filters) []result.SearchResult {
	if f.PageSize <= 0 {
		return nil
	}

	start := f.Offset()
	if start >= len(items) {
		return nil
	}

	end := start + f.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
