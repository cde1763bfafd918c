package stats

// Zone is one of the fixed court regions used by the shot chart. Values
// match the provider's SHOT_ZONE_BASIC strings so raw shot rows need no
// translation.
type Zone string

const (
	ZoneRestrictedArea Zone = "Restricted Area"
	ZonePaintNonRA     Zone = "In The Paint (Non-RA)"
	ZoneMidRange       Zone = "Mid-Range"
	ZoneLeftCorner3    Zone = "Left Corner 3"
	ZoneRightCorner3   Zone = "Right Corner 3"
	ZoneAboveBreak3    Zone = "Above the Break 3"
	ZoneBackcourt      Zone = "Backcourt"
)

// Zones lists every court zone in display order.
var Zones = []Zone{
	ZoneRestrictedArea,
	ZonePaintNonRA,
	ZoneMidRange,
	ZoneLeftCorner3,
	ZoneRightCorner3,
	ZoneAboveBreak3,
	ZoneBackcourt,
}

// Shot is a single attempt tagged with its court zone.
type Shot struct {
	Zone Zone `json:"zone"`
	Made bool `json:"made"`
}

// Tier is the qualitative bucket for a zone's efficiency relative to the
// league baseline.
type Tier string

const (
	TierElite        Tier = "elite"
	TierAboveAverage Tier = "above average"
	TierAverage      Tier = "average"
	TierBelowAverage Tier = "below average"
	TierCold         Tier = "cold"
)

// ZoneStat aggregates a player's attempts in one zone. Pct and Diff are nil
// when there is no data to compute them — a zone with zero attempts is
// "no data", never 0%.
type ZoneStat struct {
	Zone     Zone     `json:"zone"`
	Attempts int      `json:"attempts"`
	Makes    int      `json:"makes"`
	Pct      *float64 `json:"pct"`  // makes/attempts*100, one decimal
	Diff     *float64 `json:"diff"` // pct - league baseline, when both exist
	Tier     *Tier    `json:"tier,omitempty"`
}

// ZoneBreakdown is the full per-zone view plus the headline zones.
type ZoneBreakdown struct {
	Zones     []ZoneStat `json:"zones"`
	Strongest *ZoneStat  `json:"strongest_zone,omitempty"`
	Weakest   *ZoneStat  `json:"weakest_zone,omitempty"`
}

// ZoneAnalyzer aggregates raw shots into per-zone efficiency relative to
// league baselines.
type ZoneAnalyzer struct {
	baselines map[Zone]float64

	// MinWeakestAttempts is the sample floor for weakest-zone selection.
	// Small-sample zones (a 0-for-3 backcourt season, say) would otherwise
	// dominate the weak-zone signal.
	MinWeakestAttempts int
}

// NewZoneAnalyzer creates an analyzer against the given league baselines
// (zone -> expected FG%). The baselines map is never mutated.
func NewZoneAnalyzer(baselines map[Zone]float64) *ZoneAnalyzer {
	return &ZoneAnalyzer{
		baselines:          baselines,
		MinWeakestAttempts: 10,
	}
}

// Analyze aggregates shots into one ZoneStat per court zone, including
// zones the player never attempted from. Strongest is the zone with the
// highest baseline diff among zones with any attempts; weakest is the
// lowest diff among zones clearing MinWeakestAttempts.
func (a *ZoneAnalyzer) Analyze(shots []Shot) ZoneBreakdown {
	attempts := make(map[Zone]int, len(Zones))
	makes := make(map[Zone]int, len(Zones))
	for _, s := range shots {
		attempts[s.Zone]++
		if s.Made {
			makes[s.Zone]++
		}
	}

	breakdown := ZoneBreakdown{Zones: make([]ZoneStat, 0, len(Zones))}
	var strongest, weakest *ZoneStat

	for _, zone := range Zones {
		stat := ZoneStat{
			Zone:     zone,
			Attempts: attempts[zone],
			Makes:    makes[zone],
		}
		if stat.Attempts > 0 {
			stat.Pct = ptr(round1(float64(stat.Makes) / float64(stat.Attempts) * 100))
			if baseline, ok := a.baselines[zone]; ok {
				stat.Diff = ptr(round1(*stat.Pct - baseline))
				tier := ClassifyDiff(*stat.Diff)
				stat.Tier = &tier
			}
		}
		breakdown.Zones = append(breakdown.Zones, stat)
	}

	for i := range breakdown.Zones {
		stat := &breakdown.Zones[i]
		if stat.Diff == nil {
			continue
		}
		if stat.Attempts > 0 && (strongest == nil || *stat.Diff > *strongest.Diff) {
			strongest = stat
		}
		if stat.Attempts > a.MinWeakestAttempts && (weakest == nil || *stat.Diff < *weakest.Diff) {
			weakest = stat
		}
	}

	breakdown.Strongest = strongest
	breakdown.Weakest = weakest
	return breakdown
}

// ClassifyDiff buckets a baseline diff (in FG% points) into a qualitative
// tier.
func ClassifyDiff(diff float64) Tier {
	switch {
	case diff >= 8:
		return TierElite
	case diff >= 3:
		return TierAboveAverage
	case diff >= -3:
		return TierAverage
	case diff >= -8:
		return TierBelowAverage
	default:
		return TierCold
	}
}
