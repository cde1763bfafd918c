// Package stats is the aggregation and trend-detection engine. It turns a
// raw, possibly sparse, chronologically ordered sequence of per-game box
// scores into rolling averages, recent-form-vs-season deltas, and
// zone-relative shooting efficiency.
//
// All computations are pure functions over their inputs: no hidden state, no
// locking, safe to run concurrently for the same or different players.
package stats

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Sentinel errors surfaced to the API layer. Missing data is deliberately
// not an error anywhere in this package: a short season returns empty or
// degraded results, never a failure.
var (
	// ErrInvalidWindow is returned for a non-positive window size.
	ErrInvalidWindow = errors.New("window size must be a positive integer")

	// ErrUpstreamUnavailable wraps game-log store or shot-source failures so
	// handlers can distinguish "no games yet" from "could not reach the
	// data source".
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")
)

// GameRecord is one per-game box score line. Immutable once ingested;
// identified by (PlayerID, GameID). Counting and percentage fields are
// pointers so a missing value is distinguishable from an actual zero.
type GameRecord struct {
	PlayerID int       `json:"player_id"`
	GameID   string    `json:"game_id"`
	GameDate time.Time `json:"game_date"`
	Season   string    `json:"season"`
	Matchup  string    `json:"matchup,omitempty"`
	Result   string    `json:"wl,omitempty"` // "W" or "L"

	Minutes   *float64 `json:"min,omitempty"`
	Points    *float64 `json:"pts,omitempty"`
	Rebounds  *float64 `json:"reb,omitempty"`
	Assists   *float64 `json:"ast,omitempty"`
	Steals    *float64 `json:"stl,omitempty"`
	Blocks    *float64 `json:"blk,omitempty"`
	Turnovers *float64 `json:"tov,omitempty"`

	FGM   *float64 `json:"fgm,omitempty"`
	FGA   *float64 `json:"fga,omitempty"`
	FGPct *float64 `json:"fg_pct,omitempty"`

	FG3M   *float64 `json:"fg3m,omitempty"`
	FG3A   *float64 `json:"fg3a,omitempty"`
	FG3Pct *float64 `json:"fg3_pct,omitempty"`

	FTM   *float64 `json:"ftm,omitempty"`
	FTA   *float64 `json:"fta,omitempty"`
	FTPct *float64 `json:"ft_pct,omitempty"`

	PlusMinus *float64 `json:"plus_minus,omitempty"`
}

// TrueShootingPct returns PTS / (2 * (FGA + 0.44*FTA)), or nil when the
// inputs are missing or the denominator is zero.
func (g GameRecord) TrueShootingPct() *float64 {
	if g.Points == nil || g.FGA == nil {
		return nil
	}
	fta := 0.0
	if g.FTA != nil {
		fta = *g.FTA
	}
	denom := 2 * (*g.FGA + 0.44*fta)
	if denom == 0 {
		return nil
	}
	ts := *g.Points / denom
	return &ts
}

// AssistTurnoverRatio returns AST/TOV, or nil for missing inputs or a
// zero-turnover game. Zero turnovers reads as "no data for the ratio", not
// infinity; callers render it as a placeholder.
func (g GameRecord) AssistTurnoverRatio() *float64 {
	if g.Assists == nil || g.Turnovers == nil || *g.Turnovers == 0 {
		return nil
	}
	r := *g.Assists / *g.Turnovers
	return &r
}

// SortChronological returns a copy of games ordered ascending by date, ties
// broken by game ID for determinism. The engine never trusts
// collaborator-supplied ordering: display layers routinely ask for
// newest-first while window math needs ascending.
func SortChronological(games []GameRecord) []GameRecord {
	sorted := make([]GameRecord, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].GameDate.Equal(sorted[j].GameDate) {
			return sorted[i].GameDate.Before(sorted[j].GameDate)
		}
		return sorted[i].GameID < sorted[j].GameID
	})
	return sorted
}

// SeasonAverages is the trivial mean over a full game sequence.
type SeasonAverages struct {
	GamesPlayed int      `json:"gp"`
	Points      *float64 `json:"ppg"`
	Rebounds    *float64 `json:"rpg"`
	Assists     *float64 `json:"apg"`
	Turnovers   *float64 `json:"topg"`
	FGPct       *float64 `json:"fg_pct"`
	FG3Pct      *float64 `json:"fg3_pct"`
	PlusMinus   *float64 `json:"plus_minus"`
	AstToRatio  *float64 `json:"ast_to_ratio"`
}

// ComputeSeasonAverages produces per-game means over all supplied games.
// Fields missing from a game are excluded from that stat's numerator and
// denominator; a stat missing from every game averages to nil.
func ComputeSeasonAverages(games []GameRecord) SeasonAverages {
	avg := SeasonAverages{GamesPlayed: len(games)}
	if len(games) == 0 {
		return avg
	}
	avg.Points = round1p(mean(games, func(g GameRecord) *float64 { return g.Points }))
	avg.Rebounds = round1p(mean(games, func(g GameRecord) *float64 { return g.Rebounds }))
	avg.Assists = round1p(mean(games, func(g GameRecord) *float64 { return g.Assists }))
	avg.Turnovers = round1p(mean(games, func(g GameRecord) *float64 { return g.Turnovers }))
	avg.FGPct = round3p(mean(games, func(g GameRecord) *float64 { return g.FGPct }))
	avg.FG3Pct = round3p(mean(games, func(g GameRecord) *float64 { return g.FG3Pct }))
	avg.PlusMinus = round1p(mean(games, func(g GameRecord) *float64 { return g.PlusMinus }))
	avg.AstToRatio = round1p(mean(games, func(g GameRecord) *float64 { return g.AssistTurnoverRatio() }))
	return avg
}

// mean averages the extracted field over games, skipping nils. Returns nil
// when every value is missing.
func mean(games []GameRecord, field func(GameRecord) *float64) *float64 {
	sum, n := 0.0, 0
	for _, g := range games {
		if v := field(g); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round1p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round1(*v)
	return &r
}

func round3p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*1000) / 1000
	return &r
}

func ptr(v float64) *float64 { return &v }
