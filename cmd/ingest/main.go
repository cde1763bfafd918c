// Command ingest is the Hooplens data ingestion CLI.
//
// Usage:
//
//	hooplens-ingest seed roster --season 2025-26
//	hooplens-ingest seed player --id 2544 --season 2025-26
//	hooplens-ingest seed player --name "curry" --season 2025-26
//	hooplens-ingest seed full-refresh --season 2025-26
//	hooplens-ingest rolling --id 2544 --season 2025-26
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/db"
	"github.com/hooplens/hooplens-data/internal/provider/nbacom"
	"github.com/hooplens/hooplens-data/internal/seed"
	"github.com/hooplens/hooplens-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "hooplens-ingest",
		Short: "Hooplens data ingestion CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(rollingCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed data from stats.nba.com",
	}
	cmd.AddCommand(seedRosterCmd())
	cmd.AddCommand(seedPlayerCmd())
	cmd.AddCommand(seedFullRefreshCmd())
	return cmd
}

func seedRosterCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Seed the active player roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *nbacom.Client) error {
				start := time.Now()
				result := seed.SeedRoster(ctx, pool.Pool, client, season, logger)
				logger.Info("Roster seed finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", config.CurrentSeason, "Season (e.g. 2025-26)")
	return cmd
}

func seedPlayerCmd() *cobra.Command {
	var (
		playerID int
		name     string
		season   string
	)
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Seed one player's game logs, shot chart, and rolling averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 && name == "" {
				return fmt.Errorf("either --id or --name is required")
			}
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *nbacom.Client) error {
				start := time.Now()
				var result seed.Result
				if playerID != 0 {
					result = seed.SeedPlayer(ctx, pool.Pool, client, playerID, season, config.RollingWindows, logger)
				} else {
					result = seed.SeedPlayerByName(ctx, pool.Pool, client, name, season, config.RollingWindows, logger)
				}
				logger.Info("Player seed finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&playerID, "id", 0, "NBA player ID")
	cmd.Flags().StringVar(&name, "name", "", "Player name (partial match)")
	cmd.Flags().StringVar(&season, "season", config.CurrentSeason, "Season (e.g. 2025-26)")
	return cmd
}

func seedFullRefreshCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "full-refresh",
		Short: "Re-seed every active player's logs, shots, and rolling averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *nbacom.Client) error {
				start := time.Now()
				result := seed.FullRefresh(ctx, pool.Pool, client, season, config.RollingWindows, logger)
				logger.Info("Full refresh finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", config.CurrentSeason, "Season (e.g. 2025-26)")
	return cmd
}

// --------------------------------------------------------------------------
// rolling command
// --------------------------------------------------------------------------

func rollingCmd() *cobra.Command {
	var (
		playerID int
		season   string
	)
	cmd := &cobra.Command{
		Use:   "rolling",
		Short: "Recompute materialized rolling averages from stored game logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 {
				return fmt.Errorf("--id is required")
			}
			return withDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *nbacom.Client) error {
				games, err := store.New(pool.Pool).FetchGameLogs(ctx, playerID, season, 0)
				if err != nil {
					return err
				}
				n, err := seed.ReplaceRollingAverages(ctx, pool.Pool, playerID, season, games, config.RollingWindows)
				if err != nil {
					return err
				}
				logger.Info("Rolling averages rebuilt", "player_id", playerID, "season", season, "rows", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&playerID, "id", 0, "NBA player ID")
	cmd.Flags().StringVar(&season, "season", config.CurrentSeason, "Season (e.g. 2025-26)")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func withDeps(run func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *nbacom.Client) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	client := nbacom.NewClient(cfg.ProviderRequestsPerMinute, logger)
	return run(ctx, cfg, pool, client)
}
