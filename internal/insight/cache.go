// Package insight memoizes narrative-generation results per (player,
// season, question) with a bounded freshness window, so repeated questions
// never trigger redundant calls to the slow external generator.
package insight

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrGenerationFailed wraps narrative-generator errors. A failed generation
// caches nothing: any prior (even expired) entry is left untouched so the
// next call can retry.
var ErrGenerationFailed = errors.New("insight generation failed")

// DefaultTTL bounds insight freshness when the caller does not specify one.
const DefaultTTL = 24 * time.Hour

// SeasonSummaryFingerprint identifies the default "how is their season
// going" insight used when no explicit question is asked.
const SeasonSummaryFingerprint = "season_summary"

// Key identifies one cached insight.
type Key struct {
	PlayerID    int
	Season      string
	Fingerprint string
}

func (k Key) String() string {
	return fmt.Sprintf("%d|%s|%s", k.PlayerID, k.Season, k.Fingerprint)
}

// Fingerprint normalizes a free-form question into a stable cache
// fingerprint. An empty question maps to the season summary insight.
func Fingerprint(question string) string {
	q := strings.ToLower(strings.Join(strings.Fields(question), " "))
	if q == "" {
		return SeasonSummaryFingerprint
	}
	return fmt.Sprintf("q_%x", md5.Sum([]byte(q)))
}

// CachedInsight is one generated narrative. Created on first successful
// generation, read-only until expiry, then overwritten on regeneration.
type CachedInsight struct {
	PlayerID    int       `json:"player_id"`
	Season      string    `json:"season"`
	Fingerprint string    `json:"fingerprint"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store persists cached insights. Get returns (nil, nil) when no entry
// exists; expiry is the cache's concern, not the store's.
type Store interface {
	Get(ctx context.Context, key Key) (*CachedInsight, error)
	Put(ctx context.Context, ins CachedInsight) error
}

// GenerateFunc produces the narrative text. It may be slow (seconds) and is
// expected to honor ctx cancellation.
type GenerateFunc func(ctx context.Context) (string, error)

// Cache coordinates reads, expiry, and regeneration. Per-key coordination
// rather than a global lock: unrelated players' requests never serialize.
type Cache struct {
	store  Store
	logger *slog.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewCache creates a cache over the given store.
func NewCache(store Store, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, logger: logger, now: time.Now}
}

type result struct {
	ins    CachedInsight
	cached bool
}

// GetOrGenerate returns the cached insight for key when one exists and has
// not expired, without invoking generate. Otherwise it invokes generate at
// most once per key regardless of concurrent callers — everyone waiting on
// the key receives the single in-flight result — and stores the text with
// expires_at = now + ttl (DefaultTTL when ttl <= 0). Expired entries are
// lazily overwritten; there is no background sweeper.
//
// The second return value reports whether the text was served from cache.
func (c *Cache) GetOrGenerate(ctx context.Context, key Key, ttl time.Duration, generate GenerateFunc) (CachedInsight, bool, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if ins, ok, err := c.lookup(ctx, key); err != nil {
		return CachedInsight{}, false, err
	} else if ok {
		return ins, true, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// A concurrent caller may have completed generation between our
		// miss and joining the flight.
		if ins, ok, err := c.lookup(ctx, key); err != nil {
			return nil, err
		} else if ok {
			return result{ins: ins, cached: true}, nil
		}

		text, err := generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		generatedAt := c.now()
		ins := CachedInsight{
			PlayerID:    key.PlayerID,
			Season:      key.Season,
			Fingerprint: key.Fingerprint,
			Text:        text,
			GeneratedAt: generatedAt,
			ExpiresAt:   generatedAt.Add(ttl),
		}
		if err := c.store.Put(ctx, ins); err != nil {
			// The expensive call succeeded; serve the text and let the
			// next request regenerate.
			c.logger.Warn("failed to persist insight", "key", key.String(), "error", err)
		}
		return result{ins: ins}, nil
	})
	if err != nil {
		return CachedInsight{}, false, err
	}
	res := v.(result)
	return res.ins, res.cached, nil
}

// lookup returns a fresh entry if one exists. Expired entries are reported
// as misses and left in place.
func (c *Cache) lookup(ctx context.Context, key Key) (CachedInsight, bool, error) {
	ins, err := c.store.Get(ctx, key)
	if err != nil {
		return CachedInsight{}, false, fmt.Errorf("insight store get: %w", err)
	}
	if ins == nil || !c.now().Before(ins.ExpiresAt) {
		return CachedInsight{}, false, nil
	}
	return *ins, true, nil
}
