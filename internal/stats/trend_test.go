package stats

import (
	"testing"
)

func fullGame(n int, pts, reb, ast, pm float64) GameRecord {
	g := gameOn(n, pts)
	g.Rebounds = ptr(reb)
	g.Assists = ptr(ast)
	g.PlusMinus = ptr(pm)
	return g
}

func TestDetectTrends_SeasonOfExactlyRecentWindow(t *testing.T) {
	games := []GameRecord{
		fullGame(1, 20, 5, 4, 2),
		fullGame(2, 25, 6, 5, -3),
		fullGame(3, 18, 7, 3, 8),
		fullGame(4, 30, 4, 6, 1),
		fullGame(5, 22, 5, 5, 0),
	}

	snap := DetectTrends(games, 5)

	if snap.RecentGames != 5 || snap.SeasonGames != 5 {
		t.Fatalf("expected 5/5 games, got %d/%d", snap.RecentGames, snap.SeasonGames)
	}
	for name, d := range map[string]*float64{
		"pts":        snap.PtsDelta,
		"reb":        snap.RebDelta,
		"ast":        snap.AstDelta,
		"plus_minus": snap.PlusMinusDelta,
	} {
		if d == nil {
			t.Errorf("%s delta: nil, want 0", name)
		} else if *d != 0 {
			t.Errorf("%s delta: %v, want 0", name, *d)
		}
	}
}

func TestDetectTrends_RecentOutperformingSeason(t *testing.T) {
	// Five quiet games then five big ones: season avg 25, recent avg 30.
	var games []GameRecord
	for i := 1; i <= 5; i++ {
		games = append(games, fullGame(i, 20, 5, 4, -2))
	}
	for i := 6; i <= 10; i++ {
		games = append(games, fullGame(i, 30, 8, 6, 4))
	}

	snap := DetectTrends(games, 5)

	if snap.PtsDelta == nil || *snap.PtsDelta != 5.0 {
		t.Errorf("pts delta %v, want 5.0", snap.PtsDelta)
	}
	if snap.RebDelta == nil || *snap.RebDelta != 1.5 {
		t.Errorf("reb delta %v, want 1.5", snap.RebDelta)
	}
	if snap.PlusMinusDelta == nil || *snap.PlusMinusDelta != 3.0 {
		t.Errorf("plus_minus delta %v, want 3.0", snap.PlusMinusDelta)
	}
	if snap.SeasonPts == nil || *snap.SeasonPts != 25.0 {
		t.Errorf("season pts %v, want 25.0", snap.SeasonPts)
	}
	if snap.RecentPts == nil || *snap.RecentPts != 30.0 {
		t.Errorf("recent pts %v, want 30.0", snap.RecentPts)
	}
}

func TestDetectTrends_ShortSeasonDegrades(t *testing.T) {
	games := []GameRecord{fullGame(1, 20, 5, 4, 2), fullGame(2, 30, 7, 6, -1)}

	snap := DetectTrends(games, 5)

	if snap.RecentGames != 2 || snap.SeasonGames != 2 {
		t.Fatalf("expected all games used as recent set, got %d/%d", snap.RecentGames, snap.SeasonGames)
	}
	if snap.PtsDelta == nil || *snap.PtsDelta != 0 {
		t.Errorf("pts delta %v, want 0 for recent == season", snap.PtsDelta)
	}
}

func TestDetectTrends_EmptySeason(t *testing.T) {
	snap := DetectTrends(nil, 5)
	if snap.PtsDelta != nil || snap.SeasonPts != nil {
		t.Error("empty season should yield nil deltas and averages")
	}
	if snap.SeasonGames != 0 {
		t.Errorf("season games %d, want 0", snap.SeasonGames)
	}
}

func TestDetectTrends_UsesChronologicallyLastGames(t *testing.T) {
	// Supplied newest-first; the recent set must still be the latest games.
	games := []GameRecord{
		fullGame(10, 40, 5, 4, 0),
		fullGame(9, 40, 5, 4, 0),
		fullGame(2, 10, 5, 4, 0),
		fullGame(1, 10, 5, 4, 0),
	}

	snap := DetectTrends(games, 2)

	// Season avg 25, recent (games 9 and 10) avg 40.
	if snap.PtsDelta == nil || *snap.PtsDelta != 15.0 {
		t.Errorf("pts delta %v, want 15.0", snap.PtsDelta)
	}
}
