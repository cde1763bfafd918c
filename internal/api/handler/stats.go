package handler

import (
	"fmt"
	"net/http"

	"github.com/hooplens/hooplens-data/internal/cache"
	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/stats"
)

// GetRollingAverages returns fixed-window moving averages for a player.
// @Summary Get rolling averages
// @Description Returns fixed-window moving averages over the season's games, oldest window first.
// @Tags stats
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season (e.g. 2024-25)"
// @Param window query int false "Window size in games (default 5)"
// @Success 200 {array} stats.RollingPoint
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /players/{playerID}/rolling-averages [get]
func (h *Handler) GetRollingAverages(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerIDParam(w, r)
	if !ok {
		return
	}
	season := seasonParam(r)
	window := intParam(r, "window", stats.DefaultRecentWindow)

	ttl := cache.SeasonTTL(season, config.CurrentSeason)
	cacheKey := fmt.Sprintf("rolling:%d:%s:%d", playerID, season, window)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	points, err := h.engine.RollingAverages(r.Context(), playerID, season, window)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if points == nil {
		points = []stats.RollingPoint{}
	}
	h.writeCacheable(w, cacheKey, ttl, points)
}

// GetTrends returns the recent-vs-season trend snapshot for a player.
// @Summary Get trend snapshot
// @Description Compares the player's last N games against their full-season averages.
// @Tags stats
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season (e.g. 2024-25)"
// @Param recent_n query int false "Recent-form window (default 5)"
// @Success 200 {object} stats.TrendSnapshot
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /players/{playerID}/trends [get]
func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerIDParam(w, r)
	if !ok {
		return
	}
	season := seasonParam(r)
	recentN := intParam(r, "recent_n", 0)

	ttl := cache.SeasonTTL(season, config.CurrentSeason)
	cacheKey := fmt.Sprintf("trends:%d:%s:%d", playerID, season, recentN)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	snapshot, err := h.engine.Trends(r.Context(), playerID, season, recentN)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeCacheable(w, cacheKey, ttl, snapshot)
}

// GetZoneEfficiency returns shot-zone efficiency with league-baseline diffs.
// @Summary Get zone efficiency
// @Description Returns per-zone shooting percentages, baseline diffs, tiers, and strongest/weakest zones.
// @Tags stats
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season (e.g. 2024-25)"
// @Success 200 {object} stats.ZoneBreakdown
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /players/{playerID}/shot-chart [get]
func (h *Handler) GetZoneEfficiency(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerIDParam(w, r)
	if !ok {
		return
	}
	season := seasonParam(r)

	ttl := cache.SeasonTTL(season, config.CurrentSeason)
	cacheKey := fmt.Sprintf("shot-chart:%d:%s", playerID, season)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	breakdown, err := h.engine.ZoneEfficiency(r.Context(), playerID, season)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeCacheable(w, cacheKey, ttl, breakdown)
}

// GetSummary returns the composed per-player season summary.
// @Summary Get player summary
// @Description Returns season averages, rolling averages, trend snapshot, and zone efficiency in one response.
// @Tags stats
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season (e.g. 2024-25)"
// @Param window query int false "Rolling window size (default 5)"
// @Success 200 {object} stats.PlayerSummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /players/{playerID}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerIDParam(w, r)
	if !ok {
		return
	}
	season := seasonParam(r)
	window := intParam(r, "window", stats.DefaultRecentWindow)

	ttl := cache.SeasonTTL(season, config.CurrentSeason)
	cacheKey := fmt.Sprintf("summary:%d:%s:%d", playerID, season, window)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	summary, err := h.engine.Summarize(r.Context(), playerID, season, window)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeCacheable(w, cacheKey, ttl, summary)
}
