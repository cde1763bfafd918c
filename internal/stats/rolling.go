package stats

import (
	"fmt"
	"time"
)

// RollingPoint is one fixed-window moving average, anchored to the date of
// the last game in its window. Averages are nil when every source value in
// the window was missing.
type RollingPoint struct {
	GameDate     time.Time `json:"game_date"`
	WindowSize   int       `json:"window_size"`
	PtsAvg       *float64  `json:"pts_avg"`
	RebAvg       *float64  `json:"reb_avg"`
	AstAvg       *float64  `json:"ast_avg"`
	TSPctAvg     *float64  `json:"ts_pct_avg"`
	PlusMinusAvg *float64  `json:"plus_minus_avg"`
}

// RollingAverages computes strict fixed-window moving averages over games.
// Input order does not matter; games are normalized to chronological
// ascending first. One point is produced per game index i >= window-1, each
// the arithmetic mean over games [i-window+1, i]. Games before the first
// full window produce nothing — no ramp-up partial windows.
//
// A window larger than the sequence yields an empty slice, not an error;
// only a non-positive window is rejected.
func RollingAverages(games []GameRecord, window int) ([]RollingPoint, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if len(games) < window {
		return []RollingPoint{}, nil
	}

	sorted := SortChronological(games)

	points := make([]RollingPoint, 0, len(sorted)-window+1)
	for i := window - 1; i < len(sorted); i++ {
		slice := sorted[i-window+1 : i+1]
		points = append(points, RollingPoint{
			GameDate:     sorted[i].GameDate,
			WindowSize:   window,
			PtsAvg:       mean(slice, func(g GameRecord) *float64 { return g.Points }),
			RebAvg:       mean(slice, func(g GameRecord) *float64 { return g.Rebounds }),
			AstAvg:       mean(slice, func(g GameRecord) *float64 { return g.Assists }),
			TSPctAvg:     mean(slice, func(g GameRecord) *float64 { return g.TrueShootingPct() }),
			PlusMinusAvg: mean(slice, func(g GameRecord) *float64 { return g.PlusMinus }),
		})
	}
	return points, nil
}
