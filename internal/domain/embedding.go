package domain

import "context"

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

// HealthChecker is implemented by embedders that can probe their provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
