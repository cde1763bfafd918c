package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogStore struct {
	games []GameRecord
	err   error
	calls int
}

func (f *fakeLogStore) FetchGameLogs(ctx context.Context, playerID int, season string, limit int) ([]GameRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]GameRecord, len(f.games))
	copy(out, f.games)
	return out, nil
}

type fakeShotSource struct {
	shots []Shot
	err   error
}

func (f *fakeShotSource) FetchShots(ctx context.Context, playerID int, season string) ([]Shot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shots, nil
}

func newTestEngine(logs *fakeLogStore, shots *fakeShotSource) *Engine {
	return NewEngine(logs, shots, NewZoneAnalyzer(DefaultBaselines()), DefaultRecentWindow)
}

func TestEngine_NormalizesTimestampsAndOrder(t *testing.T) {
	// Store hands back newest-first rows with intra-day timestamps.
	withTime := gameOn(2, 30)
	withTime.GameDate = time.Date(2025, time.January, 2, 19, 30, 0, 0, time.UTC)
	logs := &fakeLogStore{games: []GameRecord{withTime, gameOn(1, 20)}}
	engine := newTestEngine(logs, &fakeShotSource{})

	points, err := engine.RollingAverages(context.Background(), 1, "2024-25", 2)
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Equal(t, day(2), points[0].GameDate, "timestamp should be truncated to the calendar date")
	require.NotNil(t, points[0].PtsAvg)
	assert.Equal(t, 25.0, *points[0].PtsAvg)
}

func TestEngine_UpstreamFailureSurfaces(t *testing.T) {
	logs := &fakeLogStore{err: errors.New("connection refused")}
	engine := newTestEngine(logs, &fakeShotSource{err: errors.New("timeout")})
	ctx := context.Background()

	_, err := engine.RollingAverages(ctx, 1, "2024-25", 5)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = engine.Trends(ctx, 1, "2024-25", 0)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = engine.ZoneEfficiency(ctx, 1, "2024-25")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestEngine_EmptySeasonIsNotAnError(t *testing.T) {
	engine := newTestEngine(&fakeLogStore{}, &fakeShotSource{})
	ctx := context.Background()

	points, err := engine.RollingAverages(ctx, 1, "2024-25", 5)
	require.NoError(t, err)
	assert.Empty(t, points)

	snap, err := engine.Trends(ctx, 1, "2024-25", 0)
	require.NoError(t, err)
	assert.Zero(t, snap.SeasonGames)
}

func TestEngine_RecentGamesNewestFirst(t *testing.T) {
	logs := &fakeLogStore{games: []GameRecord{
		gameOn(1, 10), gameOn(2, 20), gameOn(3, 30), gameOn(4, 40),
	}}
	engine := newTestEngine(logs, &fakeShotSource{})

	recent, err := engine.RecentGames(context.Background(), 1, "2024-25", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, day(4), recent[0].GameDate)
	assert.Equal(t, day(2), recent[2].GameDate)
}

func TestEngine_SummarizeIsConsistent(t *testing.T) {
	var games []GameRecord
	for i := 1; i <= 10; i++ {
		games = append(games, fullGame(i, float64(20+i), 5, 4, 0))
	}
	logs := &fakeLogStore{games: games}
	shotSrc := &fakeShotSource{shots: shots(ZoneRestrictedArea, 12, 8)}
	engine := newTestEngine(logs, shotSrc)

	summary, err := engine.Summarize(context.Background(), 1, "2024-25", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PlayerID)
	assert.Equal(t, 10, summary.Averages.GamesPlayed)
	assert.Len(t, summary.Rolling, 6) // 10 - 5 + 1

	// Trend snapshot and season averages come from the same fetch: the
	// season mean reported by both views must agree.
	require.NotNil(t, summary.Averages.Points)
	require.NotNil(t, summary.Trends.SeasonPts)
	assert.Equal(t, *summary.Averages.Points, *summary.Trends.SeasonPts)

	ra := summary.Zones.Zones[0]
	assert.Equal(t, ZoneRestrictedArea, ra.Zone)
	require.NotNil(t, ra.Pct)
	assert.Equal(t, 60.0, *ra.Pct)
}

func TestLoadBaselines_Defaults(t *testing.T) {
	baselines, err := LoadBaselines("")
	require.NoError(t, err)
	assert.Len(t, baselines, len(Zones))
	assert.Equal(t, 64.5, baselines[ZoneRestrictedArea])
}
