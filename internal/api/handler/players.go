package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hooplens/hooplens-data/internal/api/respond"
	"github.com/hooplens/hooplens-data/internal/cache"
	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/stats"
	"github.com/hooplens/hooplens-data/internal/store"
)

// SearchPlayers returns active players matching a name fragment.
// @Summary Search players
// @Description Case-insensitive substring search over active players.
// @Tags players
// @Produce json
// @Param q query string true "Name fragment (min 2 chars)"
// @Success 200 {array} store.Player
// @Failure 400 {object} respond.ErrorResponse
// @Router /players/search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 2 {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidQuery, "q must be at least 2 characters")
		return
	}

	players, err := h.store.SearchPlayers(r.Context(), q)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if players == nil {
		players = []store.Player{}
	}
	respond.WriteJSONObject(w, http.StatusOK, players)
}

// GetGameLogs returns a player's recent game logs, newest first.
// @Summary Get game logs
// @Description Returns the player's most recent game logs for a season, newest first.
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season (e.g. 2024-25)"
// @Param last_n query int false "How many games (default 20)"
// @Success 200 {array} stats.GameRecord
// @Failure 400 {object} respond.ErrorResponse
// @Router /players/{playerID}/game-logs [get]
func (h *Handler) GetGameLogs(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.playerIDParam(w, r)
	if !ok {
		return
	}
	season := seasonParam(r)
	lastN := intParam(r, "last_n", 20)

	ttl := cache.SeasonTTL(season, config.CurrentSeason)
	cacheKey := fmt.Sprintf("game-logs:%d:%s:%d", playerID, season, lastN)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	games, err := h.engine.RecentGames(r.Context(), playerID, season, lastN)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeCacheable(w, cacheKey, ttl, games)
}

// ComparePlayers returns season-average lines for two players side by side.
// @Summary Compare two players
// @Description Returns season averages for both players for head-to-head display.
// @Tags players
// @Produce json
// @Param player_a query int true "First player ID"
// @Param player_b query int true "Second player ID"
// @Param season query string false "Season (e.g. 2024-25)"
// @Success 200 {array} handler.ComparisonLine
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /compare [get]
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	season := seasonParam(r)

	var ids [2]int
	for i, param := range []string{"player_a", "player_b"} {
		id, err := strconv.Atoi(r.URL.Query().Get(param))
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidID, param+" must be an integer")
			return
		}
		ids[i] = id
	}

	ttl := cache.SeasonTTL(season, config.CurrentSeason)
	cacheKey := fmt.Sprintf("compare:%d:%d:%s", ids[0], ids[1], season)
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	lines := make([]ComparisonLine, 0, 2)
	for _, id := range ids {
		player, err := h.store.GetPlayer(r.Context(), id)
		if err != nil {
			h.writeEngineError(w, err)
			return
		}
		if player == nil {
			respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, fmt.Sprintf("Player %d not found", id))
			return
		}
		averages, err := h.engine.SeasonAverages(r.Context(), id, season)
		if err != nil {
			h.writeEngineError(w, err)
			return
		}
		lines = append(lines, ComparisonLine{
			PlayerID: id,
			FullName: player.FullName,
			TeamAbbr: player.TeamAbbr,
			Season:   season,
			Averages: averages,
		})
	}
	h.writeCacheable(w, cacheKey, ttl, lines)
}

// ComparisonLine is one player's side of a comparison.
type ComparisonLine struct {
	PlayerID int                  `json:"player_id"`
	FullName string               `json:"full_name"`
	TeamAbbr *string              `json:"team_abbr"`
	Season   string               `json:"season"`
	Averages stats.SeasonAverages `json:"averages"`
}

// --------------------------------------------------------------------------
// Shared request helpers
// --------------------------------------------------------------------------

func (h *Handler) playerIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidID, "Player ID must be an integer")
		return 0, false
	}
	return id, true
}

func seasonParam(r *http.Request) string {
	if s := r.URL.Query().Get("season"); s != "" {
		return s
	}
	return config.CurrentSeason
}

func intParam(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// serveCached writes a cached response (or a 304) when one is fresh.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

// writeCacheable serializes v, stores it in the response cache, and writes it.
func (h *Handler) writeCacheable(w http.ResponseWriter, key string, ttl time.Duration, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("marshal response", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, "Internal error")
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
