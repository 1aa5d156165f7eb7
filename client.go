// Package prodex is the embeddable SDK for the product search service.
// It wires the catalog store, embedding provider, and search services for
// library use without the HTTP layer.
package prodex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/prodex/internal/db"
	dbRedis "github.com/kailas-cloud/prodex/internal/db/redis"
	"github.com/kailas-cloud/prodex/internal/domain"
	"github.com/kailas-cloud/prodex/internal/repository/catalog"
	"github.com/kailas-cloud/prodex/internal/transport/hashembed"
	searchuc "github.com/kailas-cloud/prodex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// EmbeddingResult is a query embedding plus provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes free text into the product embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

type clientConfig struct {
	addrs           []string
	password        string
	embedder        Embedder
	hnswM           int
	hnswEFConstruct int
	searchTimeout   time.Duration
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithPassword sets the store password.
func WithPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithEmbedder sets the embedding provider. When omitted, a deterministic
// local hashing embedder is used.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) { c.embedder = e }
}

// WithHNSW sets the HNSW index build parameters used by EnsureIndex.
func WithHNSW(m, efConstruct int) Option {
	return func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	}
}

// WithSearchTimeout overrides the per-search deadline.
func WithSearchTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.searchTimeout = d }
}

// Client is the prodex SDK entry point.
type Client struct {
	store     db.Store
	repo      *catalog.Repo
	searchSvc *searchuc.Service
}

// New creates a prodex Client and connects to the catalog store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("prodex: store address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("prodex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("prodex: store not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	repo := catalog.New(store)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		repo = repo.WithHNSW(catalog.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}

	var emb domain.Embedder = hashembed.New(domain.EmbeddingDim)
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
	}

	searchSvc := searchuc.New(repo, repo, emb)
	if cfg.searchTimeout > 0 {
		searchSvc = searchSvc.WithTimeout(cfg.searchTimeout)
	}

	return &Client{
		store:     store,
		repo:      repo,
		searchSvc: searchSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the search service for a given collection.
func (c *Client) Search(collection string) *SearchService {
	return &SearchService{collection: collection, svc: c.searchSvc, repo: c.repo}
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
