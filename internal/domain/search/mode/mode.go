package mode

// Mode is the search ranking strategy.
type Mode string

// Search mode constants.
const (
	// Lexical ranks by BM25 term relevance over the text fields.
	Lexical Mode = "lexical"
	// Vector ranks by cosine similarity between embeddings.
	Vector Mode = "vector"
	// Hybrid blends lexical and vector scores 30/70.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Lexical || m == Vector || m == Hybrid
}
