package domain

import "errors"

var (
	// ErrSearchFailed signals that a catalog query could not be executed.
	// The underlying store error is preserved in the chain.
	ErrSearchFailed = errors.New("search failed")
	// ErrInvalidCollection signals a collection identifier that failed validation.
	ErrInvalidCollection = errors.New("invalid collection name")
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrUnsupportedMode signals an unknown search mode.
	ErrUnsupportedMode = errors.New("unsupported search mode")
)
