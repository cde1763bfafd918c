// Command api is the Hooplens Data API server.
//
// Usage:
//
//	hooplens-api
//	API_PORT=8080 hooplens-api

// @title Hooplens Data API
// @version 1.0.0
// @description NBA per-game statistics API serving rolling averages, trend detection, shot-zone efficiency, and cached narrative insights.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Hooplens
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/hooplens/hooplens-data/internal/api"
	"github.com/hooplens/hooplens-data/internal/api/handler"
	"github.com/hooplens/hooplens-data/internal/cache"
	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/db"
	"github.com/hooplens/hooplens-data/internal/insight"
	"github.com/hooplens/hooplens-data/internal/provider/anthropic"
	"github.com/hooplens/hooplens-data/internal/stats"
	"github.com/hooplens/hooplens-data/internal/store"

	_ "github.com/hooplens/hooplens-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// League shot-zone baselines: defaults, or a YAML override file.
	baselines := stats.DefaultBaselines()
	if cfg.BaselinesFile != "" {
		baselines, err = stats.LoadBaselines(cfg.BaselinesFile)
		if err != nil {
			logger.Error("Failed to load baselines", "file", cfg.BaselinesFile, "error", err)
			os.Exit(1)
		}
		logger.Info("Loaded league baselines", "file", cfg.BaselinesFile)
	}

	// Aggregation engine over the Postgres store
	st := store.New(pool.Pool)
	engine := stats.NewEngine(st, st, stats.NewZoneAnalyzer(baselines), cfg.RecentWindow)

	// Insight cache + narrative generator
	insights := insight.NewCache(store.NewInsightStore(pool.Pool), logger)
	var generator handler.Generator
	if cfg.AnthropicAPIKey != "" {
		generator = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		logger.Info("Insight generation enabled", "model", cfg.AnthropicModel)
	} else {
		logger.Info("Insight generation disabled (no ANTHROPIC_API_KEY)")
	}

	// Initialize HTTP response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(pool.Pool, st, engine, insights, generator, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Hooplens Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
