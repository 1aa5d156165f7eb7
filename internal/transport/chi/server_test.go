package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
	"github.com/kailas-cloud/prodex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/prodex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/prodex/internal/usecase/search"
)

func postSearch(t *testing.T, h http.Handler, collection, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/collections/"+collection+"/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestSearch_Lexical_OK(t *testing.T) {
	repo := &mockRepo{
		lexicalPageFn: func(_ context.Context, _, _ string, _ filter.Filters) ([]result.Hit, error) {
			return []result.Hit{hit(1, 2.5), hit(2, 1.5)}, nil
		},
		lexicalCountFn: func(_ context.Context, _, _ string, _ filter.Filters) (int64, error) {
			return 42, nil
		},
	}
	facets := &mockFacets{
		categoryFn: func(_ context.Context, _, _ string) ([]result.FacetCount, error) {
			return []result.FacetCount{{Value: "electronics", Count: 30}}, nil
		},
		ratingFn: func(_ context.Context, _, _ string) ([]result.RatingBucket, error) {
			return []result.RatingBucket{{Stars: 4, Count: 25}}, nil
		},
		summaryFn: func(_ context.Context, _, _ string) (result.Summary, error) {
			return result.Summary{AvgPrice: 59.9, AvgRating: 4.1}, nil
		},
	}
	h := newTestRouter(repo, facets, nil, nil)

	rr := postSearch(t, h, "shop", `{"query":"mouse","mode":"lexical"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount != 42 {
		t.Errorf("expected total_count 42, got %d", resp.TotalCount)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].BM25Score == nil || *resp.Items[0].BM25Score != 2.5 {
		t.Errorf("expected bm25_score 2.5, got %v", resp.Items[0].BM25Score)
	}
	if resp.Items[0].VectorScore != nil {
		t.Error("lexical search must not carry a vector score")
	}
	if resp.Mode != "lexical" {
		t.Errorf("expected mode lexical, got %s", resp.Mode)
	}
	if len(resp.Facets.Categories) != 1 || resp.Facets.Categories[0].Value != "electronics" {
		t.Errorf("unexpected category facets: %+v", resp.Facets.Categories)
	}
	if len(resp.Facets.RatingDistribution) != 1 || resp.Facets.RatingDistribution[0].Stars != 4 {
		t.Errorf("unexpected rating distribution: %+v", resp.Facets.RatingDistribution)
	}
	if resp.Facets.AvgPrice != 59.9 {
		t.Errorf("expected avg_price 59.9, got %f", resp.Facets.AvgPrice)
	}
}

func TestSearch_DefaultsModeAndPageSize(t *testing.T) {
	var gotSize int
	repo := &mockRepo{
		lexicalPageFn: func(_ context.Context, _, _ string, f filter.Filters) ([]result.Hit, error) {
			gotSize = f.PageSize
			return nil, nil
		},
	}
	h := newTestRouter(repo, nil, nil, nil)

	rr := postSearch(t, h, "shop", `{"query":"mouse"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotSize != defaultPageSize {
		t.Errorf("expected default page size %d, got %d", defaultPageSize, gotSize)
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Mode != "lexical" {
		t.Errorf("empty mode must default to lexical, got %s", resp.Mode)
	}
	if resp.PageSize != defaultPageSize {
		t.Errorf("expected page_size %d in response, got %d", defaultPageSize, resp.PageSize)
	}
}

func TestSearch_PageSizeCapped(t *testing.T) {
	var gotSize int
	repo := &mockRepo{
		lexicalPageFn: func(_ context.Context, _, _ string, f filter.Filters) ([]result.Hit, error) {
			gotSize = f.PageSize
			return nil, nil
		},
	}
	h := newTestRouter(repo, nil, nil, nil)

	rr := postSearch(t, h, "shop", `{"query":"mouse","page_size":5000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotSize != maxPageSize {
		t.Errorf("expected page size capped at %d, got %d", maxPageSize, gotSize)
	}
}

func TestSearch_BadJSON_400(t *testing.T) {
	h := newTestRouter(nil, nil, nil, nil)

	rr := postSearch(t, h, "shop", `{"query":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != codeBadRequest {
		t.Errorf("expected code %s, got %s", codeBadRequest, resp.Code)
	}
}

func TestSearch_ValidationErrors_400(t *testing.T) {
	h := newTestRouter(nil, nil, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"unknown mode", `{"query":"x","mode":"semantic"}`},
		{"unknown sort", `{"query":"x","sort_by":"price"}`},
		{"negative page", `{"query":"x","page":-1}`},
		{"negative page size", `{"query":"x","page_size":-5}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postSearch(t, h, "shop", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			if resp := decodeError(t, rr); resp.Code != codeValidationFailed {
				t.Errorf("expected code %s, got %s", codeValidationFailed, resp.Code)
			}
		})
	}
}

func TestSearch_InvalidCollection_400(t *testing.T) {
	h := newTestRouter(nil, nil, nil, nil)

	rr := postSearch(t, h, "Bad..Name", `{"query":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if resp := decodeError(t, rr); resp.Code != codeInvalidCollection {
		t.Errorf("expected code %s, got %s", codeInvalidCollection, resp.Code)
	}
}

func TestSearch_EmbeddingFailure_502(t *testing.T) {
	emb := &mockEmbedder{
		embedFn: func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{}, errors.New("provider unreachable")
		},
	}
	h := newTestRouter(nil, nil, emb, nil)

	rr := postSearch(t, h, "shop", `{"query":"x","mode":"vector"}`)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rr.Code, rr.Body.String())
	}
	if resp := decodeError(t, rr); resp.Code != codeEmbeddingProviderError {
		t.Errorf("expected code %s, got %s", codeEmbeddingProviderError, resp.Code)
	}
}

func TestSearch_StoreFailure_500_Opaque(t *testing.T) {
	repo := &mockRepo{
		lexicalPageFn: func(_ context.Context, _, _ string, _ filter.Filters) ([]result.Hit, error) {
			return nil, errors.New("FT.SEARCH: connection refused to 10.0.0.7:6379")
		},
	}
	h := newTestRouter(repo, nil, nil, nil)

	rr := postSearch(t, h, "shop", `{"query":"x"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Code != codeSearchFailed {
		t.Errorf("expected code %s, got %s", codeSearchFailed, resp.Code)
	}
	if resp.Message != domain.ErrSearchFailed.Error() {
		t.Errorf("expected opaque message %q, got %q", domain.ErrSearchFailed.Error(), resp.Message)
	}
	if strings.Contains(rr.Body.String(), "10.0.0.7") {
		t.Error("store details must not leak to the client")
	}
}

func TestGetProduct_OK(t *testing.T) {
	products := &mockProducts{
		getFn: func(_ context.Context, collection string, id int64) (domain.Product, error) {
			if collection != "shop" || id != 42 {
				t.Errorf("unexpected lookup: %s/%d", collection, id)
			}
			return domain.Product{ID: 42, Name: "Mechanical Keyboard", Price: 89.99, InStock: true}, nil
		},
	}
	h := newTestRouter(nil, nil, nil, products)

	req := httptest.NewRequest("GET", "/collections/shop/products/42", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp productResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 42 || resp.Name != "Mechanical Keyboard" {
		t.Errorf("unexpected product: %+v", resp)
	}
}

func TestGetProduct_NotFound_404(t *testing.T) {
	h := newTestRouter(nil, nil, nil, &mockProducts{})

	req := httptest.NewRequest("GET", "/collections/shop/products/99", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != codeProductNotFound {
		t.Errorf("expected code %s, got %s", codeProductNotFound, resp.Code)
	}
}

func TestGetProduct_NonIntegerID_400(t *testing.T) {
	h := newTestRouter(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/collections/shop/products/abc", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHealthCheck_OK(t *testing.T) {
	h := newTestRouter(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.Checks["store"] != "ok" {
		t.Errorf("expected store check ok, got %s", resp.Checks["store"])
	}
}

func TestHealthCheck_Degraded_503(t *testing.T) {
	healthSvc := healthuc.New(&mockPinger{err: errors.New("connection refused")}, nil)
	searchSvc := searchuc.New(&mockRepo{}, &mockFacets{}, &mockEmbedder{})
	server := NewServer(searchSvc, &mockProducts{}, healthSvc, zap.NewNop())
	r := chirouter.NewRouter()
	server.Routes(r)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
