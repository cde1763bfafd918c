package stats

import (
	"testing"
)

func shots(zone Zone, makes, misses int) []Shot {
	var out []Shot
	for i := 0; i < makes; i++ {
		out = append(out, Shot{Zone: zone, Made: true})
	}
	for i := 0; i < misses; i++ {
		out = append(out, Shot{Zone: zone, Made: false})
	}
	return out
}

func findZone(t *testing.T, b ZoneBreakdown, zone Zone) ZoneStat {
	t.Helper()
	for _, z := range b.Zones {
		if z.Zone == zone {
			return z
		}
	}
	t.Fatalf("zone %q missing from breakdown", zone)
	return ZoneStat{}
}

func TestZoneAnalyzer_PctAndBaselineDiff(t *testing.T) {
	analyzer := NewZoneAnalyzer(map[Zone]float64{ZoneRestrictedArea: 64.5})

	// 12-for-20 in the restricted area against a 64.5 baseline.
	breakdown := analyzer.Analyze(shots(ZoneRestrictedArea, 12, 8))
	ra := findZone(t, breakdown, ZoneRestrictedArea)

	if ra.Attempts != 20 || ra.Makes != 12 {
		t.Fatalf("got %d/%d, want 12/20", ra.Makes, ra.Attempts)
	}
	if ra.Pct == nil || *ra.Pct != 60.0 {
		t.Errorf("pct %v, want 60.0", ra.Pct)
	}
	if ra.Diff == nil || *ra.Diff != -4.5 {
		t.Errorf("diff %v, want -4.5", ra.Diff)
	}
	if ra.Tier == nil || *ra.Tier != TierBelowAverage {
		t.Errorf("tier %v, want below average", ra.Tier)
	}
}

func TestZoneAnalyzer_ZeroAttemptsIsNull(t *testing.T) {
	analyzer := NewZoneAnalyzer(DefaultBaselines())

	breakdown := analyzer.Analyze(shots(ZoneMidRange, 3, 3))

	for _, zone := range Zones {
		if zone == ZoneMidRange {
			continue
		}
		z := findZone(t, breakdown, zone)
		if z.Pct != nil {
			t.Errorf("%s: pct %v, want nil for 0 attempts", zone, *z.Pct)
		}
		if z.Diff != nil {
			t.Errorf("%s: diff %v, want nil for 0 attempts", zone, *z.Diff)
		}
	}
}

func TestZoneAnalyzer_StrongestAndWeakest(t *testing.T) {
	analyzer := NewZoneAnalyzer(map[Zone]float64{
		ZoneRestrictedArea: 64.5,
		ZoneMidRange:       41.0,
		ZoneAboveBreak3:    35.5,
	})

	var all []Shot
	all = append(all, shots(ZoneRestrictedArea, 45, 15)...) // 75.0, diff +10.5
	all = append(all, shots(ZoneMidRange, 6, 14)...)        // 30.0, diff -11.0
	all = append(all, shots(ZoneAboveBreak3, 10, 20)...)    // 33.3, diff -2.2

	breakdown := analyzer.Analyze(all)

	if breakdown.Strongest == nil || breakdown.Strongest.Zone != ZoneRestrictedArea {
		t.Errorf("strongest = %+v, want Restricted Area", breakdown.Strongest)
	}
	if breakdown.Weakest == nil || breakdown.Weakest.Zone != ZoneMidRange {
		t.Errorf("weakest = %+v, want Mid-Range", breakdown.Weakest)
	}
}

func TestZoneAnalyzer_WeakestIgnoresSmallSamples(t *testing.T) {
	analyzer := NewZoneAnalyzer(map[Zone]float64{
		ZoneMidRange:    41.0,
		ZoneLeftCorner3: 38.5,
	})

	var all []Shot
	all = append(all, shots(ZoneLeftCorner3, 0, 4)...) // 0.0, diff -38.5, only 4 attempts
	all = append(all, shots(ZoneMidRange, 7, 13)...)   // 35.0, diff -6.0, 20 attempts

	breakdown := analyzer.Analyze(all)

	// The 0-for-4 corner has the numerically lowest diff, but it is below
	// the sample floor so Mid-Range must win weakest.
	if breakdown.Weakest == nil || breakdown.Weakest.Zone != ZoneMidRange {
		t.Errorf("weakest = %+v, want Mid-Range", breakdown.Weakest)
	}
	// It still counts for strongest selection (attempts > 0), where the
	// small sample is harmless.
	if breakdown.Strongest == nil || breakdown.Strongest.Zone != ZoneMidRange {
		t.Errorf("strongest = %+v, want Mid-Range", breakdown.Strongest)
	}
}

func TestZoneAnalyzer_WeakestNilWhenNoZoneClearsSampleFloor(t *testing.T) {
	analyzer := NewZoneAnalyzer(DefaultBaselines())

	breakdown := analyzer.Analyze(shots(ZoneMidRange, 2, 3))

	if breakdown.Weakest != nil {
		t.Errorf("weakest = %+v, want nil below sample floor", breakdown.Weakest)
	}
	if breakdown.Strongest == nil {
		t.Error("strongest should still be selected with any attempts")
	}
}

func TestClassifyDiff(t *testing.T) {
	cases := []struct {
		diff float64
		want Tier
	}{
		{12, TierElite},
		{8, TierElite},
		{7.9, TierAboveAverage},
		{3, TierAboveAverage},
		{2.9, TierAverage},
		{0, TierAverage},
		{-3, TierAverage},
		{-3.1, TierBelowAverage},
		{-8, TierBelowAverage},
		{-8.1, TierCold},
		{-20, TierCold},
	}
	for _, c := range cases {
		if got := ClassifyDiff(c.diff); got != c.want {
			t.Errorf("ClassifyDiff(%v) = %q, want %q", c.diff, got, c.want)
		}
	}
}
