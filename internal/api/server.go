// Package api assembles the HTTP surface: router, middleware, and the
// endpoint handlers under handler/.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/hooplens/hooplens-data/internal/api/handler"
	"github.com/hooplens/hooplens-data/internal/cache"
	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/insight"
	"github.com/hooplens/hooplens-data/internal/stats"
	"github.com/hooplens/hooplens-data/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(
	pool *pgxpool.Pool,
	st *store.Store,
	engine *stats.Engine,
	insights *insight.Cache,
	generator handler.Generator,
	appCache *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, st, engine, insights, generator, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Players
		r.Get("/players/search", h.SearchPlayers)
		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Get("/game-logs", h.GetGameLogs)
			r.Get("/rolling-averages", h.GetRollingAverages)
			r.Get("/trends", h.GetTrends)
			r.Get("/shot-chart", h.GetZoneEfficiency)
			r.Get("/summary", h.GetSummary)
		})

		// Head-to-head comparison
		r.Get("/compare", h.ComparePlayers)

		// Narrative insights
		r.Post("/insights", h.GenerateInsight)
	})

	return r
}
