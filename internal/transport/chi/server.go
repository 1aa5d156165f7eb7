package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/metrics"
	healthuc "github.com/kailas-cloud/prodex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/prodex/internal/usecase/search"
)

// ProductReader fetches a single product by ID.
type ProductReader interface {
	GetProduct(ctx context.Context, collection string, id int64) (domain.Product, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API surface over the search and health services.
type Server struct {
	search        *searchuc.Service
	products      ProductReader
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	products ProductReader,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		products: products,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidCollection, http.StatusBadRequest, codeInvalidCollection),
		sentinelHandler(domain.ErrUnsupportedMode, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeProductNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrSearchFailed, http.StatusInternalServerError, codeSearchFailed),
	}
	return s
}

// Routes registers the API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/collections/{collection}/search", s.Search)
	r.Get("/collections/{collection}/products/{id}", s.GetProduct)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /collections/{collection}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if !domain.ValidCollectionName(collection) {
		writeError(w, http.StatusBadRequest, codeInvalidCollection, domain.ErrInvalidCollection.Error())
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	m, err := modeFromRequest(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	f, err := filtersFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	res, err := s.search.Search(r.Context(), collection, m, req.Query, f)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(collection, string(m), "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(collection, string(m), "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(collection, string(m)).Observe(time.Since(start).Seconds())
	metrics.SearchResultCount.WithLabelValues(collection, string(m)).Observe(float64(res.TotalCount))

	writeJSON(w, http.StatusOK, resultsToResponse(res, m, f))
}

// GetProduct handles GET /collections/{collection}/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if !domain.ValidCollectionName(collection) {
		writeError(w, http.StatusBadRequest, codeInvalidCollection, domain.ErrInvalidCollection.Error())
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "product id must be an integer")
		return
	}

	p, err := s.products.GetProduct(r.Context(), collection, id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(p))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string)
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidCollection,
		domain.ErrUnsupportedMode,
		domain.ErrProductNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrSearchFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
