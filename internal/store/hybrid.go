package store

import (
	"context"
	"fmt"
)

// Hybrid routes the keyword channels and the vector channel to separate
// backing stores. Vectors may be nil when dense retrieval is not configured;
// the fuser never issues a vector query without an embedded vector, but a
// stray call still gets a clear error.
type Hybrid struct {
	Keyword DocumentStore
	Vectors DocumentStore
}

// NewHybrid creates a Hybrid over a keyword store and an optional vector store.
func NewHybrid(keyword, vectors DocumentStore) *Hybrid {
	return &Hybrid{Keyword: keyword, Vectors: vectors}
}

func (h *Hybrid) SearchLexical(ctx context.Context, query string, limit int) ([]Row, error) {
	return h.Keyword.SearchLexical(ctx, query, limit)
}

func (h *Hybrid) SearchTitle(ctx context.Context, query string, limit int) ([]Row, error) {
	return h.Keyword.SearchTitle(ctx, query, limit)
}

func (h *Hybrid) SearchVector(ctx context.Context, vector []float32, limit int) ([]Row, error) {
	if h.Vectors == nil {
		return nil, fmt.Errorf("vector channel is not configured")
	}
	return h.Vectors.SearchVector(ctx, vector, limit)
}
