// Package api assembles the HTTP API: typed routes, middleware and metrics.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hszk-dev/monostack/internal/api/handler"
	"github.com/hszk-dev/monostack/internal/api/middleware"
	"github.com/hszk-dev/monostack/internal/usecase"
)

// Dependencies required to build the API router.
type Dependencies struct {
	Users   usecase.UserService
	Logger  *slog.Logger
	Started time.Time
	// AllowedOrigins for CORS; empty allows every origin.
	AllowedOrigins []string
}

// NewRouter builds the API handler. It fails if the route table is
// misconfigured.
func NewRouter(deps Dependencies) (http.Handler, error) {
	reg := handler.NewRegistry(
		handler.NewHealthHandler(deps.Started),
		handler.NewUserHandler(deps.Users),
	)

	routes, err := reg.Handler(handler.WriteError)
	if err != nil {
		return nil, fmt.Errorf("invalid route table: %w", err)
	}

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodPatch},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Mount("/", routes)

	return r, nil
}
