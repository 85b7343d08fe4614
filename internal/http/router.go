// Package http wires the chi router, middleware, and handlers.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/handlers"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/pipeline"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine pipeline.Engine
	DB     *sql.DB
	// Vectors is nil when the vector channel is not configured.
	Vectors handlers.VectorChecker
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Vectors)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
	})
	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
