package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the FTS5 chunk index. It is idempotent and can be run
// multiple times safely. Requires a SQLite build with the FTS5 extension
// (the sqlite_fts5 build tag on mattn/go-sqlite3).
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
			title,
			body,
			source_path UNINDEXED,
			chunk_id UNINDEXED
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// SQLiteStore serves the lexical and title channels from an FTS5 index.
// It does not serve the vector channel; pair it with a QdrantStore through
// Hybrid when dense retrieval is configured.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore over an opened, migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InsertChunk adds one chunk to the index. Used by ingestion tooling and
// tests; the query path is read-only.
func (s *SQLiteStore) InsertChunk(ctx context.Context, sourcePath, chunkID, title, body string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chunks_fts (title, body, source_path, chunk_id) VALUES (?, ?, ?, ?)",
		title, body, sourcePath, chunkID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// SearchLexical ranks chunks by body relevance. The body column dominates the
// bm25 weighting so title-only matches do not crowd out content matches.
func (s *SQLiteStore) SearchLexical(ctx context.Context, query string, limit int) ([]Row, error) {
	match := ftsMatchExpr(query)
	if match == "" || limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, chunk_id, body, -bm25(chunks_fts, 0.5, 1.0) AS score
		 FROM chunks_fts
		 WHERE chunks_fts MATCH ?
		 ORDER BY score DESC, source_path ASC, chunk_id ASC
		 LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("lexical query failed: %w", err)
	}
	defer rows.Close()

	return scanBodyRows(rows)
}

// SearchTitle ranks chunks by title relevance. Rows carry the body in the
// Content field and an FTS snippet as a fallback excerpt.
func (s *SQLiteStore) SearchTitle(ctx context.Context, query string, limit int) ([]Row, error) {
	match := ftsMatchExpr(query)
	if match == "" || limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, chunk_id, body, snippet(chunks_fts, 1, '', '', '...', 24),
		        -bm25(chunks_fts, 5.0, 0.2) AS score
		 FROM chunks_fts
		 WHERE chunks_fts MATCH ?
		 ORDER BY score DESC, source_path ASC, chunk_id ASC
		 LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("title query failed: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.SourcePath, &row.ChunkID, &row.Content, &row.Snippet, &row.Score); err != nil {
			return nil, fmt.Errorf("failed to scan title row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchVector is not supported by the FTS index.
func (s *SQLiteStore) SearchVector(ctx context.Context, vector []float32, limit int) ([]Row, error) {
	return nil, fmt.Errorf("sqlite store does not serve the vector channel")
}

func scanBodyRows(rows *sql.Rows) ([]Row, error) {
	out := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.SourcePath, &row.ChunkID, &row.Text, &row.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ftsMatchExpr turns free text into an FTS5 MATCH expression. Each token is
// double-quoted so punctuation is never parsed as a query operator, and tokens
// are OR-joined to favor recall; bm25 ranking rewards multi-token matches.
func ftsMatchExpr(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		quoted = append(quoted, `"`+f+`"`)
	}
	return strings.Join(quoted, " OR ")
}
