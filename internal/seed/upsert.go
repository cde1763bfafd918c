package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hooplens/hooplens-data/internal/provider/nbacom"
	"github.com/hooplens/hooplens-data/internal/stats"
)

// UpsertPlayer writes one roster row.
func UpsertPlayer(ctx context.Context, pool *pgxpool.Pool, p nbacom.PlayerSummary) error {
	teamAbbr := nullableString(p.TeamAbbr)
	_, err := pool.Exec(ctx, "player_upsert", p.PlayerID, p.FullName, teamAbbr, nil, p.IsActive)
	if err != nil {
		return fmt.Errorf("upsert player %d: %w", p.PlayerID, err)
	}
	return nil
}

// UpsertGameLog writes one box-score row on its (player_id, game_id) key.
func UpsertGameLog(ctx context.Context, pool *pgxpool.Pool, g stats.GameRecord) error {
	_, err := pool.Exec(ctx, "game_log_upsert",
		g.PlayerID, g.GameID, g.GameDate, g.Season, g.Matchup, g.Result,
		g.Minutes, g.Points, g.Rebounds, g.Assists, g.Steals, g.Blocks, g.Turnovers,
		g.FGM, g.FGA, g.FGPct, g.FG3M, g.FG3A, g.FG3Pct,
		g.FTM, g.FTA, g.FTPct, g.PlusMinus,
	)
	if err != nil {
		return fmt.Errorf("upsert game log %s: %w", g.GameID, err)
	}
	return nil
}

// ReplaceShots deletes and reinserts a player/season's shot rows. Raw shots
// carry no clean natural key, so replacement is the only idempotent write.
func ReplaceShots(ctx context.Context, pool *pgxpool.Pool, playerID int, season string, shots []nbacom.ShotDetail) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin shots tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "shots_delete", playerID, season); err != nil {
		return 0, fmt.Errorf("delete shots: %w", err)
	}

	inserted := 0
	for _, s := range shots {
		gameDate, err := parseShotDate(s.GameDate)
		if err != nil {
			return inserted, err
		}
		_, err = tx.Exec(ctx, "shot_insert",
			playerID, s.GameID, season, gameDate, string(s.Zone), s.ZoneArea,
			s.ShotDistance, s.LocX, s.LocY, s.Made, s.ShotType, s.ActionType,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert shot: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return inserted, fmt.Errorf("commit shots tx: %w", err)
	}
	return inserted, nil
}

// ReplaceRollingAverages recomputes and rewrites the materialized rolling
// rows for a player/season across the given windows.
func ReplaceRollingAverages(ctx context.Context, pool *pgxpool.Pool, playerID int, season string, games []stats.GameRecord, windows []int) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin rolling tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "rolling_delete", playerID, season); err != nil {
		return 0, fmt.Errorf("delete rolling rows: %w", err)
	}

	written := 0
	for _, window := range windows {
		points, err := stats.RollingAverages(games, window)
		if err != nil {
			return written, fmt.Errorf("rolling window %d: %w", window, err)
		}
		for _, p := range points {
			_, err := tx.Exec(ctx, "rolling_upsert",
				playerID, p.GameDate, season, p.WindowSize,
				p.PtsAvg, p.RebAvg, p.AstAvg, p.TSPctAvg, p.PlusMinusAvg,
			)
			if err != nil {
				return written, fmt.Errorf("upsert rolling row: %w", err)
			}
			written++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return written, fmt.Errorf("commit rolling tx: %w", err)
	}
	return written, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseShotDate handles the provider's YYYYMMDD shot-chart dates.
func parseShotDate(raw string) (time.Time, error) {
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse shot date %q: %w", raw, err)
	}
	return t, nil
}
