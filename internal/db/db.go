// Package db provides a pgxpool-based connection pool with prepared
// statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hooplens/hooplens-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Players
		"player_search": `SELECT player_id, full_name, team_abbr, position
			FROM players
			WHERE LOWER(full_name) LIKE LOWER($1) AND is_active = TRUE
			ORDER BY full_name LIMIT 10`,
		"player_lookup": `SELECT player_id, full_name, team_abbr, position
			FROM players WHERE player_id = $1`,
		"player_upsert": `INSERT INTO players (player_id, full_name, team_abbr, position, is_active)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (player_id) DO UPDATE SET
				full_name = EXCLUDED.full_name,
				team_abbr = EXCLUDED.team_abbr,
				is_active = EXCLUDED.is_active`,

		// Game logs
		"game_logs_fetch": `SELECT player_id, game_id, game_date, season, matchup, wl,
				min, pts, reb, ast, stl, blk, tov,
				fgm, fga, fg_pct, fg3m, fg3a, fg3_pct, ftm, fta, ft_pct, plus_minus
			FROM player_game_logs
			WHERE player_id = $1 AND season = $2
			ORDER BY game_date ASC, game_id ASC`,
		"game_log_upsert": `INSERT INTO player_game_logs (
				player_id, game_id, game_date, season, matchup, wl,
				min, pts, reb, ast, stl, blk, tov,
				fgm, fga, fg_pct, fg3m, fg3a, fg3_pct, ftm, fta, ft_pct, plus_minus
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
			ON CONFLICT (player_id, game_id) DO UPDATE SET
				pts = EXCLUDED.pts,
				reb = EXCLUDED.reb,
				ast = EXCLUDED.ast,
				plus_minus = EXCLUDED.plus_minus`,

		// Rolling averages (materialized at ingest)
		"rolling_delete": `DELETE FROM player_rolling_averages WHERE player_id = $1 AND season = $2`,
		"rolling_upsert": `INSERT INTO player_rolling_averages (
				player_id, game_date, season, window_size,
				pts_avg, reb_avg, ast_avg, ts_pct_avg, plus_minus_avg
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (player_id, game_date, window_size) DO UPDATE SET
				pts_avg = EXCLUDED.pts_avg,
				reb_avg = EXCLUDED.reb_avg,
				ast_avg = EXCLUDED.ast_avg,
				ts_pct_avg = EXCLUDED.ts_pct_avg,
				plus_minus_avg = EXCLUDED.plus_minus_avg`,

		// Shot chart (no clean natural key on raw shots: delete + reinsert)
		"shots_fetch": `SELECT zone, shot_made FROM shot_chart
			WHERE player_id = $1 AND season = $2`,
		"shots_delete": `DELETE FROM shot_chart WHERE player_id = $1 AND season = $2`,
		"shot_insert": `INSERT INTO shot_chart (
				player_id, game_id, season, game_date, zone, zone_area,
				shot_distance, loc_x, loc_y, shot_made, shot_type, action_type
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,

		// Insights (natural key overwrite on regeneration)
		"insight_get": `SELECT insight_text, generated_at, expires_at
			FROM player_insights
			WHERE player_id = $1 AND season = $2 AND fingerprint = $3`,
		"insight_put": `INSERT INTO player_insights (
				player_id, season, fingerprint, insight_text, generated_at, expires_at
			) VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (player_id, season, fingerprint) DO UPDATE SET
				insight_text = EXCLUDED.insight_text,
				generated_at = EXCLUDED.generated_at,
				expires_at = EXCLUDED.expires_at`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
