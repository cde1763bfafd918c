package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hooplens/hooplens-data/internal/insight"
)

// InsightStore persists cached insights in the player_insights table, one
// row per (player, season, fingerprint). Regeneration overwrites the row.
type InsightStore struct {
	pool *pgxpool.Pool
}

// NewInsightStore creates an insight store over the given pool.
func NewInsightStore(pool *pgxpool.Pool) *InsightStore {
	return &InsightStore{pool: pool}
}

// Get returns the stored insight for key, or nil when none exists. Expired
// rows are returned as-is; expiry is the cache's decision.
func (s *InsightStore) Get(ctx context.Context, key insight.Key) (*insight.CachedInsight, error) {
	ins := insight.CachedInsight{
		PlayerID:    key.PlayerID,
		Season:      key.Season,
		Fingerprint: key.Fingerprint,
	}
	err := s.pool.QueryRow(ctx, "insight_get", key.PlayerID, key.Season, key.Fingerprint).
		Scan(&ins.Text, &ins.GeneratedAt, &ins.ExpiresAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get insight: %w", err)
	}
	return &ins, nil
}

// Put upserts the insight on its natural key.
func (s *InsightStore) Put(ctx context.Context, ins insight.CachedInsight) error {
	_, err := s.pool.Exec(ctx, "insight_put",
		ins.PlayerID, ins.Season, ins.Fingerprint, ins.Text, ins.GeneratedAt, ins.ExpiresAt)
	if err != nil {
		return fmt.Errorf("put insight: %w", err)
	}
	return nil
}
