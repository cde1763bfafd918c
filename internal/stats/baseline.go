package stats

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// League-wide FG% reference rates per zone. These track recent regular
// seasons closely enough for relative comparison; deployments that want a
// season-exact set override them with a YAML file.
var defaultBaselines = map[Zone]float64{
	ZoneRestrictedArea: 64.5,
	ZonePaintNonRA:     43.5,
	ZoneMidRange:       41.0,
	ZoneLeftCorner3:    38.5,
	ZoneRightCorner3:   38.8,
	ZoneAboveBreak3:    35.5,
	ZoneBackcourt:      2.5,
}

// DefaultBaselines returns a copy of the built-in league baselines.
func DefaultBaselines() map[Zone]float64 {
	out := make(map[Zone]float64, len(defaultBaselines))
	for z, v := range defaultBaselines {
		out[z] = v
	}
	return out
}

// LoadBaselines reads zone baselines from a YAML file keyed by zone name,
// merged over the built-in defaults so a partial file only overrides the
// zones it names. An empty path returns the defaults. Unknown zone names
// are rejected rather than silently dropped.
func LoadBaselines(path string) (map[Zone]float64, error) {
	baselines := DefaultBaselines()
	if path == "" {
		return baselines, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baselines file: %w", err)
	}

	var fromFile map[string]float64
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return nil, fmt.Errorf("parse baselines file: %w", err)
	}

	for name, pct := range fromFile {
		zone := Zone(name)
		if _, ok := defaultBaselines[zone]; !ok {
			return nil, fmt.Errorf("unknown zone %q in baselines file", name)
		}
		baselines[zone] = pct
	}
	return baselines, nil
}
