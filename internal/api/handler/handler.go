// Package handler provides HTTP handlers for all API endpoints. Handlers
// delegate aggregation to the stats engine and insight cache; they own only
// request parsing, response caching, and error mapping.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hooplens/hooplens-data/internal/api/respond"
	"github.com/hooplens/hooplens-data/internal/cache"
	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/insight"
	"github.com/hooplens/hooplens-data/internal/stats"
	"github.com/hooplens/hooplens-data/internal/store"
)

// Generator is the narrative-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool      *pgxpool.Pool
	store     *store.Store
	engine    *stats.Engine
	insights  *insight.Cache
	generator Generator
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies. generator may be nil when
// no API key is configured; insight endpoints then return 503.
func New(pool *pgxpool.Pool, st *store.Store, engine *stats.Engine, insights *insight.Cache, generator Generator, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		pool:      pool,
		store:     st,
		engine:    engine,
		insights:  insights,
		generator: generator,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Hooplens Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory response cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeEngineError maps engine sentinel errors onto HTTP statuses.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stats.ErrInvalidWindow):
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidWindow, err.Error())
	case errors.Is(err, stats.ErrUpstreamUnavailable):
		h.logger.Error("upstream unavailable", "error", err)
		respond.WriteError(w, http.StatusServiceUnavailable, respond.CodeUpstreamUnavailable, "Data source unavailable")
	default:
		h.logger.Error("request failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, "Internal error")
	}
}
