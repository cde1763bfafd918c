package seed

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hooplens/hooplens-data/internal/provider/nbacom"
)

// SeedRoster upserts the league's active players for the season.
func SeedRoster(ctx context.Context, pool *pgxpool.Pool, client *nbacom.Client, season string, logger *slog.Logger) Result {
	var result Result

	logger.Info("Seeding roster...", "season", season)
	players, err := client.GetAllPlayers(ctx, season)
	if err != nil {
		result.AddErrorf("fetch roster: %v", err)
		return result
	}
	for _, p := range players {
		if err := UpsertPlayer(ctx, pool, p); err != nil {
			result.AddErrorf("upsert player %d: %v", p.PlayerID, err)
		} else {
			result.PlayersUpserted++
		}
	}
	logger.Info("Roster done", "count", result.PlayersUpserted)
	return result
}

// SeedPlayer runs the full per-player flow: game logs, shot chart, then the
// materialized rolling averages derived from the logs just written.
func SeedPlayer(ctx context.Context, pool *pgxpool.Pool, client *nbacom.Client, playerID int, season string, windows []int, logger *slog.Logger) Result {
	var result Result

	logger.Info("Seeding game logs...", "player_id", playerID, "season", season)
	games, err := client.GetGameLogs(ctx, playerID, season)
	if err != nil {
		result.AddErrorf("fetch game logs for %d: %v", playerID, err)
		return result
	}
	for _, g := range games {
		if err := UpsertGameLog(ctx, pool, g); err != nil {
			result.AddErrorf("upsert game log %s: %v", g.GameID, err)
		} else {
			result.GameLogsUpserted++
		}
	}

	logger.Info("Seeding shot chart...", "player_id", playerID)
	shots, err := client.GetShotChart(ctx, playerID, season)
	if err != nil {
		result.AddErrorf("fetch shot chart for %d: %v", playerID, err)
	} else {
		inserted, err := ReplaceShots(ctx, pool, playerID, season, shots)
		result.ShotsInserted += inserted
		if err != nil {
			result.AddErrorf("replace shots for %d: %v", playerID, err)
		}
	}

	logger.Info("Computing rolling averages...", "player_id", playerID, "windows", windows)
	written, err := ReplaceRollingAverages(ctx, pool, playerID, season, games, windows)
	result.RollingRows += written
	if err != nil {
		result.AddErrorf("rolling averages for %d: %v", playerID, err)
	}

	logger.Info("Player seed done", "player_id", playerID, "summary", result.Summary())
	return result
}

// SeedPlayerByName resolves a player by (partial, case-insensitive) name
// against the roster and seeds the first match.
func SeedPlayerByName(ctx context.Context, pool *pgxpool.Pool, client *nbacom.Client, name, season string, windows []int, logger *slog.Logger) Result {
	var result Result

	players, err := client.GetAllPlayers(ctx, season)
	if err != nil {
		result.AddErrorf("fetch roster: %v", err)
		return result
	}

	var matches []nbacom.PlayerSummary
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.FullName), strings.ToLower(name)) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		result.AddErrorf("player %q not found", name)
		return result
	}
	if len(matches) > 1 {
		logger.Warn("Multiple roster matches, using first", "name", name, "matches", len(matches))
	}

	player := matches[0]
	if err := UpsertPlayer(ctx, pool, player); err != nil {
		result.AddErrorf("upsert player %d: %v", player.PlayerID, err)
	} else {
		result.PlayersUpserted++
	}

	result.Add(SeedPlayer(ctx, pool, client, player.PlayerID, season, windows, logger))
	return result
}

// FullRefresh seeds the roster then every active player. Per-player errors
// are collected, not fatal: one blocked player must not sink the sweep.
func FullRefresh(ctx context.Context, pool *pgxpool.Pool, client *nbacom.Client, season string, windows []int, logger *slog.Logger) Result {
	var result Result

	players, err := client.GetAllPlayers(ctx, season)
	if err != nil {
		result.AddErrorf("fetch roster: %v", err)
		return result
	}

	for i, p := range players {
		if ctx.Err() != nil {
			result.AddErrorf("refresh interrupted: %v", ctx.Err())
			break
		}
		if !p.IsActive {
			continue
		}
		if err := UpsertPlayer(ctx, pool, p); err != nil {
			result.AddErrorf("upsert player %d: %v", p.PlayerID, err)
			continue
		}
		result.PlayersUpserted++
		result.Add(SeedPlayer(ctx, pool, client, p.PlayerID, season, windows, logger))
		if (i+1)%50 == 0 {
			logger.Info("Full refresh progress", "processed", i+1, "total", len(players))
		}
	}

	logger.Info("Full refresh complete", "summary", result.Summary())
	return result
}
