package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/contextutil"
)

// VectorChecker probes the vector channel backend.
type VectorChecker interface {
	CollectionExists(ctx context.Context) (bool, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 *sql.DB
	vectors            VectorChecker
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. vectors may be nil when the
// vector channel is not configured; its check is then skipped.
func NewHealthHandler(db *sql.DB, vectors VectorChecker) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		vectors:            vectors,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP checks the document index and, when configured, the vector store.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "document index health check failed", "error", err)
		checks["document_index"] = "error"
		issues = append(issues, "document_index_unavailable")
	} else {
		checks["document_index"] = "ok"
	}

	if h.vectors != nil {
		if h.checkVectors(checkCtx, logger) {
			checks["vector_store"] = "ok"
		} else {
			checks["vector_store"] = "error"
			issues = append(issues, "vector_store_unavailable")
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

func (h *HealthHandler) checkVectors(ctx context.Context, logger *slog.Logger) bool {
	exists, err := h.vectors.CollectionExists(ctx)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist")
		return false
	}
	return true
}
