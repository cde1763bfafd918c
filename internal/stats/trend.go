package stats

// DefaultRecentWindow is the "recent form" slice used when the caller does
// not specify one. The facade uses the same value for every view of the
// recent window so trend deltas and recent-form displays never disagree.
const DefaultRecentWindow = 5

// TrendSnapshot compares the most recent games to the season baseline.
// Deltas are recent minus season, rounded to one decimal: positive means
// the player is outperforming their baseline. That sign convention holds
// for points, rebounds, assists, and plus-minus alike. (A turnover trend,
// if added, reverses it — fewer turnovers is better — and must be flagged
// as asymmetric where it is introduced.)
type TrendSnapshot struct {
	PtsDelta       *float64 `json:"pts_delta"`
	RebDelta       *float64 `json:"reb_delta"`
	AstDelta       *float64 `json:"ast_delta"`
	PlusMinusDelta *float64 `json:"plus_minus_delta"`

	SeasonPts *float64 `json:"season_pts"`
	RecentPts *float64 `json:"recent_pts"`

	RecentGames int `json:"recent_games"`
	SeasonGames int `json:"season_games"`
}

// DetectTrends computes recent-vs-season deltas using the chronologically
// last recentN games. A season shorter than recentN degrades gracefully:
// the recent set becomes the whole season and every delta is zero. This
// component tolerates sparse histories where strict windowing does not —
// the point is trend signal, not window math.
func DetectTrends(games []GameRecord, recentN int) TrendSnapshot {
	if recentN <= 0 {
		recentN = DefaultRecentWindow
	}
	sorted := SortChronological(games)

	recent := sorted
	if len(sorted) > recentN {
		recent = sorted[len(sorted)-recentN:]
	}

	snap := TrendSnapshot{
		RecentGames: len(recent),
		SeasonGames: len(sorted),
	}
	if len(sorted) == 0 {
		return snap
	}

	seasonPts := mean(sorted, func(g GameRecord) *float64 { return g.Points })
	recentPts := mean(recent, func(g GameRecord) *float64 { return g.Points })

	snap.SeasonPts = round1p(seasonPts)
	snap.RecentPts = round1p(recentPts)
	snap.PtsDelta = delta(recentPts, seasonPts)
	snap.RebDelta = delta(
		mean(recent, func(g GameRecord) *float64 { return g.Rebounds }),
		mean(sorted, func(g GameRecord) *float64 { return g.Rebounds }))
	snap.AstDelta = delta(
		mean(recent, func(g GameRecord) *float64 { return g.Assists }),
		mean(sorted, func(g GameRecord) *float64 { return g.Assists }))
	snap.PlusMinusDelta = delta(
		mean(recent, func(g GameRecord) *float64 { return g.PlusMinus }),
		mean(sorted, func(g GameRecord) *float64 { return g.PlusMinus }))
	return snap
}

// delta returns recent - season rounded to one decimal, or nil when either
// side has no data.
func delta(recent, season *float64) *float64 {
	if recent == nil || season == nil {
		return nil
	}
	return ptr(round1(*recent - *season))
}
