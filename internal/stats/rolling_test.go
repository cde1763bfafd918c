package stats

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, time.January, n, 0, 0, 0, 0, time.UTC)
}

func gameOn(n int, pts float64) GameRecord {
	return GameRecord{
		PlayerID: 1,
		GameID:   fmt.Sprintf("00225%05d", n),
		GameDate: day(n),
		Season:   "2024-25",
		Points:   ptr(pts),
	}
}

func TestRollingAverages_WindowOfTwo(t *testing.T) {
	games := []GameRecord{
		gameOn(1, 20), gameOn(2, 30), gameOn(3, 10), gameOn(4, 40),
	}

	points, err := RollingAverages(games, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	want := []struct {
		date time.Time
		pts  float64
	}{
		{day(2), 25}, {day(3), 20}, {day(4), 25},
	}
	for i, w := range want {
		if !points[i].GameDate.Equal(w.date) {
			t.Errorf("point %d: date %v, want %v", i, points[i].GameDate, w.date)
		}
		if points[i].PtsAvg == nil || *points[i].PtsAvg != w.pts {
			t.Errorf("point %d: pts_avg %v, want %v", i, points[i].PtsAvg, w.pts)
		}
		if points[i].WindowSize != 2 {
			t.Errorf("point %d: window_size %d, want 2", i, points[i].WindowSize)
		}
	}
}

func TestRollingAverages_PointCountAndMeans(t *testing.T) {
	const n, w = 12, 5
	games := make([]GameRecord, 0, n)
	for i := 1; i <= n; i++ {
		games = append(games, gameOn(i, float64(10+i)))
	}

	points, err := RollingAverages(games, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != n-w+1 {
		t.Fatalf("expected %d points, got %d", n-w+1, len(points))
	}
	for i, p := range points {
		sum := 0.0
		for j := i; j < i+w; j++ {
			sum += float64(10 + j + 1)
		}
		want := sum / w
		if p.PtsAvg == nil || *p.PtsAvg != want {
			t.Errorf("point %d: pts_avg %v, want %v", i, p.PtsAvg, want)
		}
	}
}

func TestRollingAverages_WindowLargerThanSeason(t *testing.T) {
	games := []GameRecord{gameOn(1, 20), gameOn(2, 30)}

	points, err := RollingAverages(games, 10)
	if err != nil {
		t.Fatalf("expected no error for short season, got %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected empty result, got %d points", len(points))
	}
}

func TestRollingAverages_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -1, -20} {
		t.Run(fmt.Sprintf("window_%d", w), func(t *testing.T) {
			_, err := RollingAverages([]GameRecord{gameOn(1, 20)}, w)
			if !errors.Is(err, ErrInvalidWindow) {
				t.Fatalf("expected ErrInvalidWindow, got %v", err)
			}
		})
	}
}

func TestRollingAverages_Idempotent(t *testing.T) {
	games := []GameRecord{
		gameOn(1, 20), gameOn(2, 30), gameOn(3, 10), gameOn(4, 40), gameOn(5, 15),
	}

	first, err := RollingAverages(games, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := RollingAverages(games, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different outputs")
	}
}

func TestRollingAverages_NormalizesOrdering(t *testing.T) {
	ascending := []GameRecord{gameOn(1, 20), gameOn(2, 30), gameOn(3, 10)}
	descending := []GameRecord{gameOn(3, 10), gameOn(2, 30), gameOn(1, 20)}

	fromAsc, err := RollingAverages(ascending, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromDesc, err := RollingAverages(descending, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fromAsc, fromDesc) {
		t.Fatal("newest-first input produced different output than ascending input")
	}
}

func TestRollingAverages_MissingValuesSkipped(t *testing.T) {
	noPts := gameOn(2, 0)
	noPts.Points = nil
	games := []GameRecord{gameOn(1, 20), noPts, gameOn(3, 30)}

	points, err := RollingAverages(games, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	// Missing game excluded from numerator and denominator: (20+30)/2.
	if points[0].PtsAvg == nil || *points[0].PtsAvg != 25 {
		t.Errorf("pts_avg %v, want 25", points[0].PtsAvg)
	}
	// Rebounds missing everywhere: average is null, not zero.
	if points[0].RebAvg != nil {
		t.Errorf("reb_avg %v, want nil", *points[0].RebAvg)
	}
}

func TestTrueShootingPct(t *testing.T) {
	g := GameRecord{Points: ptr(30.0), FGA: ptr(20.0), FTA: ptr(10.0)}
	ts := g.TrueShootingPct()
	if ts == nil {
		t.Fatal("expected a TS%, got nil")
	}
	want := 30.0 / (2 * (20 + 0.44*10))
	if *ts != want {
		t.Errorf("ts %v, want %v", *ts, want)
	}

	zeroDenom := GameRecord{Points: ptr(0.0), FGA: ptr(0.0), FTA: ptr(0.0)}
	if zeroDenom.TrueShootingPct() != nil {
		t.Error("zero denominator should yield nil, not NaN or Inf")
	}
}
