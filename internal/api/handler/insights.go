package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hooplens/hooplens-data/internal/api/respond"
	"github.com/hooplens/hooplens-data/internal/insight"
	"github.com/hooplens/hooplens-data/internal/stats"
)

// InsightRequest is the POST /insights body. player_id = 0 with a question
// runs the generator in raw mode without any player data attached.
type InsightRequest struct {
	PlayerID int    `json:"player_id"`
	Season   string `json:"season"`
	Question string `json:"question"`
}

// InsightResponse wraps a generated narrative with its cache metadata.
type InsightResponse struct {
	insight.CachedInsight
	CacheHit bool `json:"cache_hit"`
}

// GenerateInsight produces (or serves a cached) narrative analysis.
// @Summary Generate a player insight
// @Description Generates a narrative analysis of a player's season, cached per question fingerprint.
// @Tags insights
// @Accept json
// @Produce json
// @Param request body handler.InsightRequest true "Insight request"
// @Success 200 {object} handler.InsightResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /insights [post]
func (h *Handler) GenerateInsight(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, respond.CodeGenerationFailed,
			"Insight generation is not configured")
		return
	}

	var req InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidQuery, "Invalid JSON body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)

	if req.PlayerID == 0 {
		h.rawInsight(w, r, req.Question)
		return
	}

	season := req.Season
	if season == "" {
		season = seasonParam(r)
	}

	player, err := h.store.GetPlayer(r.Context(), req.PlayerID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if player == nil {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound,
			fmt.Sprintf("Player %d not found", req.PlayerID))
		return
	}

	key := insight.Key{
		PlayerID:    req.PlayerID,
		Season:      season,
		Fingerprint: insight.Fingerprint(req.Question),
	}

	cached, hit, err := h.insights.GetOrGenerate(r.Context(), key, h.cfg.InsightTTL,
		func(ctx context.Context) (string, error) {
			return h.generateForPlayer(ctx, player.FullName, derefOr(player.TeamAbbr, "N/A"),
				derefOr(player.Position, "N/A"), req.PlayerID, season, req.Question)
		})
	if err != nil {
		h.writeInsightError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, InsightResponse{CachedInsight: cached, CacheHit: hit})
}

// rawInsight passes a free-form question straight to the generator with no
// player data and no caching.
func (h *Handler) rawInsight(w http.ResponseWriter, r *http.Request, question string) {
	if question == "" {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidQuery,
			"Either player_id or question is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.GenerationTimeout)
	defer cancel()

	text, err := h.generator.Generate(ctx, question)
	if err != nil {
		h.logger.Error("raw insight generation failed", "error", err)
		respond.WriteError(w, http.StatusBadGateway, respond.CodeGenerationFailed,
			"Insight generation failed")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"text": text})
}

// generateForPlayer assembles the prompt from engine views and runs the
// generator under the configured timeout.
func (h *Handler) generateForPlayer(ctx context.Context, name, team, position string, playerID int, season, question string) (string, error) {
	averages, err := h.engine.SeasonAverages(ctx, playerID, season)
	if err != nil {
		return "", err
	}
	recent, err := h.engine.RecentGames(ctx, playerID, season, insight.RecentGamesForPrompt)
	if err != nil {
		return "", err
	}
	zones, err := h.engine.ZoneEfficiency(ctx, playerID, season)
	if err != nil {
		return "", err
	}

	prompt := insight.BuildPrompt(insight.PromptData{
		Player:   insight.PlayerInfo{Name: name, Team: team, Position: position},
		Season:   season,
		Averages: averages,
		Recent:   recent,
		Zones:    zones.Zones,
		Question: question,
	})

	genCtx, cancel := context.WithTimeout(ctx, h.cfg.GenerationTimeout)
	defer cancel()
	return h.generator.Generate(genCtx, prompt)
}

func (h *Handler) writeInsightError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insight.ErrGenerationFailed):
		h.logger.Error("insight generation failed", "error", err)
		respond.WriteError(w, http.StatusBadGateway, respond.CodeGenerationFailed,
			"Insight generation failed")
	case errors.Is(err, stats.ErrUpstreamUnavailable):
		respond.WriteError(w, http.StatusServiceUnavailable, respond.CodeUpstreamUnavailable,
			"Data source unavailable")
	default:
		h.writeEngineError(w, err)
	}
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
