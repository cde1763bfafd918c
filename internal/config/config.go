// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api, cmd/ingest, and cmd/mcp.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CurrentSeason is the default season when callers omit one, in the
// provider's "YYYY-YY" form.
const CurrentSeason = "2025-26"

// RollingWindows are the window sizes materialized at ingest time. The API
// accepts any positive window; these are just what gets precomputed.
var RollingWindows = []int{5, 10, 20}

// Config is populated from environment variables.
type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// NBA Stats provider
	ProviderRequestsPerMinute int

	// Narrative generation
	AnthropicAPIKey   string
	AnthropicModel    string
	InsightTTL        time.Duration
	GenerationTimeout time.Duration

	// Engine
	RecentWindow  int
	BaselinesFile string

	// HTTP response cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		// ~0.6s between requests by default; stats.nba.com bans bursty clients.
		ProviderRequestsPerMinute: envInt("NBA_STATS_REQUESTS_PER_MINUTE", 100),

		AnthropicAPIKey:   envOr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		InsightTTL:        time.Duration(envInt("INSIGHT_TTL_HOURS", 24)) * time.Hour,
		GenerationTimeout: time.Duration(envInt("GENERATION_TIMEOUT_SECONDS", 45)) * time.Second,

		RecentWindow:  envInt("RECENT_WINDOW", 5),
		BaselinesFile: envOr("LEAGUE_BASELINES_FILE", ""),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
