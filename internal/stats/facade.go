package stats

import (
	"context"
	"fmt"
	"time"
)

// GameLogStore supplies ordered per-game records for a player/season. The
// engine treats it as read-only and never trusts its ordering. limit <= 0
// means all available games.
type GameLogStore interface {
	FetchGameLogs(ctx context.Context, playerID int, season string, limit int) ([]GameRecord, error)
}

// ShotSource supplies raw zone-tagged shot attempts for a player/season.
type ShotSource interface {
	FetchShots(ctx context.Context, playerID int, season string) ([]Shot, error)
}

// Engine composes the calculators over the collaborator stores into the
// responses the presentation layer consumes. It owns date normalization and
// the single "recent N games" slice shared by every view.
type Engine struct {
	logs    GameLogStore
	shots   ShotSource
	zones   *ZoneAnalyzer
	recentN int
}

// NewEngine builds an engine over the given collaborators. recentN <= 0
// falls back to DefaultRecentWindow.
func NewEngine(logs GameLogStore, shots ShotSource, zones *ZoneAnalyzer, recentN int) *Engine {
	if recentN <= 0 {
		recentN = DefaultRecentWindow
	}
	return &Engine{logs: logs, shots: shots, zones: zones, recentN: recentN}
}

// RecentWindow returns the recent-form slice size shared across views.
func (e *Engine) RecentWindow() int { return e.recentN }

// RollingAverages fetches the season's game logs and computes fixed-window
// moving averages. Store failures surface as ErrUpstreamUnavailable; a
// window larger than the season yields an empty slice.
func (e *Engine) RollingAverages(ctx context.Context, playerID int, season string, window int) ([]RollingPoint, error) {
	games, err := e.fetchSeason(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	return RollingAverages(games, window)
}

// Trends returns the recent-vs-season snapshot. recentN <= 0 uses the
// engine's shared recent window, which is what every caller should want;
// an explicit recentN exists for ad-hoc analysis and knowingly gives up
// consistency with the other views.
func (e *Engine) Trends(ctx context.Context, playerID int, season string, recentN int) (TrendSnapshot, error) {
	if recentN <= 0 {
		recentN = e.recentN
	}
	games, err := e.fetchSeason(ctx, playerID, season)
	if err != nil {
		return TrendSnapshot{}, err
	}
	return DetectTrends(games, recentN), nil
}

// SeasonAverages returns the whole-season per-game means.
func (e *Engine) SeasonAverages(ctx context.Context, playerID int, season string) (SeasonAverages, error) {
	games, err := e.fetchSeason(ctx, playerID, season)
	if err != nil {
		return SeasonAverages{}, err
	}
	return ComputeSeasonAverages(games), nil
}

// ZoneEfficiency aggregates the season's shots into per-zone efficiency
// with baseline diffs and headline strongest/weakest zones.
func (e *Engine) ZoneEfficiency(ctx context.Context, playerID int, season string) (ZoneBreakdown, error) {
	shots, err := e.shots.FetchShots(ctx, playerID, season)
	if err != nil {
		return ZoneBreakdown{}, fmt.Errorf("%w: fetch shots: %v", ErrUpstreamUnavailable, err)
	}
	return e.zones.Analyze(shots), nil
}

// RecentGames returns the chronologically last n games in newest-first
// order for display. n <= 0 uses the engine's recent window.
func (e *Engine) RecentGames(ctx context.Context, playerID int, season string, n int) ([]GameRecord, error) {
	if n <= 0 {
		n = e.recentN
	}
	games, err := e.fetchSeason(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	if len(games) > n {
		games = games[len(games)-n:]
	}
	// Reverse for newest-first display.
	for i, j := 0, len(games)-1; i < j; i, j = i+1, j-1 {
		games[i], games[j] = games[j], games[i]
	}
	return games, nil
}

// PlayerSummary is the composed per-player/season response.
type PlayerSummary struct {
	PlayerID int            `json:"player_id"`
	Season   string         `json:"season"`
	Averages SeasonAverages `json:"season_averages"`
	Rolling  []RollingPoint `json:"rolling_averages"`
	Trends   TrendSnapshot  `json:"trends"`
	Zones    ZoneBreakdown  `json:"zone_efficiency"`
}

// Summarize composes season averages, rolling averages for the requested
// window, the trend snapshot, and zone efficiency into one response. All
// views are computed from a single fetch of the season's games so they
// cannot disagree about the underlying window.
func (e *Engine) Summarize(ctx context.Context, playerID int, season string, window int) (PlayerSummary, error) {
	games, err := e.fetchSeason(ctx, playerID, season)
	if err != nil {
		return PlayerSummary{}, err
	}
	rolling, err := RollingAverages(games, window)
	if err != nil {
		return PlayerSummary{}, err
	}
	zones, err := e.ZoneEfficiency(ctx, playerID, season)
	if err != nil {
		return PlayerSummary{}, err
	}
	return PlayerSummary{
		PlayerID: playerID,
		Season:   season,
		Averages: ComputeSeasonAverages(games),
		Rolling:  rolling,
		Trends:   DetectTrends(games, e.recentN),
		Zones:    zones,
	}, nil
}

// fetchSeason pulls every game for the player/season, normalizes timestamps
// to calendar dates, and sorts chronologically.
func (e *Engine) fetchSeason(ctx context.Context, playerID int, season string) ([]GameRecord, error) {
	games, err := e.logs.FetchGameLogs(ctx, playerID, season, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch game logs: %v", ErrUpstreamUnavailable, err)
	}
	for i := range games {
		games[i].GameDate = truncateToDate(games[i].GameDate)
	}
	return SortChronological(games), nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
