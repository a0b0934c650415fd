package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mostrador-pos/mostrador-pos/internal/analytics"
	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
	"github.com/mostrador-pos/mostrador-pos/internal/masterdata/categories"
	"github.com/mostrador-pos/mostrador-pos/internal/observability"
	"github.com/mostrador-pos/mostrador-pos/internal/quotes"
	"github.com/mostrador-pos/mostrador-pos/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	CatalogHandler    *catalog.Handler
	CategoriesHandler *categories.Handler
	AnalyticsHandler  *analytics.Handler
	QuotesHandler     *quotes.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Mostrador defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.CatalogHandler.MountRoutes(r)
		params.CategoriesHandler.MountRoutes(r)
		params.QuotesHandler.MountRoutes(r)
		r.Route("/dashboard", params.AnalyticsHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
