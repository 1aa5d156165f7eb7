// Package hashembed provides a deterministic, dependency-free embedding
// provider for local development and tests. Vectors come from feature
// hashing over word 3-grams, L2-normalized so cosine similarity behaves
// like the real provider's output. Quality is far below a learned model;
// the point is that equal text always embeds to the equal vector with no
// network and no credentials.
package hashembed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/kailas-cloud/prodex/internal/domain"
)

// Embedder implements domain.Embedder with feature hashing.
type Embedder struct {
	dim int
}

// New creates a hashing embedder producing dim-sized vectors.
func New(dim int) *Embedder {
	if dim <= 0 {
		dim = domain.EmbeddingDim
	}
	return &Embedder{dim: dim}
}

// Embed implements domain.Embedder. It never fails and reports zero token
// usage.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, e.dim)

	for _, feature := range features(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(feature))
		sum := h.Sum32()

		idx := int(sum % uint32(e.dim))
		// High bit decides the sign so colliding features can cancel
		// instead of always accumulating.
		if sum&0x80000000 != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	normalize(vec)
	return domain.EmbeddingResult{Embedding: vec}, nil
}

// HealthCheck implements domain.HealthChecker; the embedder has no
// dependencies to probe.
func (e *Embedder) HealthCheck(_ context.Context) error {
	return nil
}

// features lowercases the text and emits each word plus its character
// 3-grams, giving nearby spellings overlapping feature sets.
func features(text string) []string {
	words := strings.Fields(strings.ToLower(text))

	out := make([]string, 0, len(words)*4)
	for _, w := range words {
		out = append(out, w)
		runes := []rune(w)
		for i := 0; i+3 <= len(runes); i++ {
			out = append(out, string(runes[i:i+3]))
		}
	}
	return out
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
