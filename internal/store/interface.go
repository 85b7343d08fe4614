// Package store defines the document/chunk store contract consumed by the
// retrieval fuser, plus the shipped adapters (SQLite FTS5 for the lexical and
// title channels, Qdrant for the vector channel).
package store

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks github.com/TheMonk2121/ai-dev-tasks-sub022/internal/store DocumentStore

import "context"

// Row is one ranked chunk row returned by a store channel query. A store may
// populate any subset of the text fields; readers resolve the actual chunk
// text through ResolveText.
type Row struct {
	// SourcePath is the originating file path of the chunk.
	SourcePath string
	// ChunkID identifies the chunk within its source file.
	ChunkID string
	// Text is the primary chunk text.
	Text string
	// Content is a secondary text field some stores expose instead of Text.
	Content string
	// Snippet is a store-generated excerpt, used only when no fuller text exists.
	Snippet string
	// Score is the channel-specific relevance score, higher is better.
	Score float64
}

// ResolveText returns the first non-empty text field in priority order:
// Text, then Content, then Snippet.
func (r Row) ResolveText() string {
	if r.Text != "" {
		return r.Text
	}
	if r.Content != "" {
		return r.Content
	}
	return r.Snippet
}

// DocumentStore is the read-only ranked-list provider the fuser queries.
// Each method is an independent read; the fuser may call them concurrently.
// Implementations must honor context cancellation.
type DocumentStore interface {
	// SearchLexical runs a full-text query and returns up to limit rows
	// ranked by lexical relevance.
	SearchLexical(ctx context.Context, query string, limit int) ([]Row, error)
	// SearchTitle runs a title-weighted query and returns up to limit rows
	// ranked by title-match relevance.
	SearchTitle(ctx context.Context, query string, limit int) ([]Row, error)
	// SearchVector runs a dense-vector similarity query and returns up to
	// limit rows ranked by similarity.
	SearchVector(ctx context.Context, vector []float32, limit int) ([]Row, error)
}
