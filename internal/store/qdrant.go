package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/contextutil"
)

// Payload keys expected on each indexed point.
const (
	payloadSourcePath = "source_path"
	payloadChunkID    = "chunk_id"
	payloadText       = "text"
)

// QdrantStore serves the vector channel from a Qdrant collection. Points are
// expected to carry source_path, chunk_id, and text in their payload.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantStore creates a Qdrant-backed vector store.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) will be derived from the HTTP port.
func NewQdrantStore(urlStr, collection string) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client, collection: collection}, nil
}

// CollectionExists reports whether the backing collection exists. Also used
// as the health probe for the vector channel.
func (s *QdrantStore) CollectionExists(ctx context.Context) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}
	return exists, nil
}

// EnsureCollection creates the collection with the given vector size if it
// does not already exist.
func (s *QdrantStore) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	exists, err := s.CollectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// SearchVector runs a similarity query and maps the scored points to rows.
// Points with no source_path payload are skipped.
func (s *QdrantStore) SearchVector(ctx context.Context, vector []float32, limit int) ([]Row, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if limit <= 0 {
		return nil, nil
	}

	capped := uint64(limit)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &capped,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to query points", "collection", s.collection, "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to query points: %w", err)
	}

	rows := make([]Row, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		row := Row{Score: float64(point.Score)}
		for key, value := range point.Payload {
			switch key {
			case payloadSourcePath:
				row.SourcePath = value.GetStringValue()
			case payloadChunkID:
				row.ChunkID = value.GetStringValue()
			case payloadText:
				row.Text = value.GetStringValue()
			}
		}
		if row.SourcePath == "" {
			logger.WarnContext(ctx, "skipping point without source_path payload", "collection", s.collection)
			continue
		}
		rows = append(rows, row)
	}

	logger.DebugContext(ctx, "vector search completed", "collection", s.collection, "limit", limit, "rows", len(rows))
	return rows, nil
}

// SearchLexical is not supported by the vector store.
func (s *QdrantStore) SearchLexical(ctx context.Context, query string, limit int) ([]Row, error) {
	return nil, fmt.Errorf("qdrant store does not serve the lexical channel")
}

// SearchTitle is not supported by the vector store.
func (s *QdrantStore) SearchTitle(ctx context.Context, query string, limit int) ([]Row, error) {
	return nil, fmt.Errorf("qdrant store does not serve the title channel")
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}
