package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/contextutil"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/pipeline"
)

// AskHandler handles HTTP requests for pipeline queries.
type AskHandler struct {
	engine pipeline.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine pipeline.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers a question over the indexed chunks.
//
// Use the `debug=true` query parameter to include per-candidate retrieval
// scores in the response.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req pipeline.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	debugParam := r.URL.Query().Get("debug")
	if debugParam == "true" || debugParam == "1" {
		req.Debug = true
	}

	resp, err := h.engine.Ask(ctx, req)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuestion) {
			logger.WarnContext(ctx, "empty question in request")
			h.writeError(w, http.StatusBadRequest, "Question is required")
			return
		}
		logger.ErrorContext(ctx, "ask failed", "error", err)
		h.writeError(w, http.StatusBadGateway, "Failed to answer question")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (h *AskHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
