// Command mcp exposes the aggregation engine as MCP tools over streamable
// HTTP, so agent clients can query rolling averages, trends, zone
// efficiency, and narrative insights directly.
//
// Usage:
//
//	hooplens-mcp --addr :8090 --path /mcp
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hooplens/hooplens-data/internal/config"
	"github.com/hooplens/hooplens-data/internal/db"
	"github.com/hooplens/hooplens-data/internal/insight"
	"github.com/hooplens/hooplens-data/internal/provider/anthropic"
	"github.com/hooplens/hooplens-data/internal/stats"
	"github.com/hooplens/hooplens-data/internal/store"
)

type rollingArgs struct {
	PlayerID int    `json:"player_id" jsonschema:"NBA player id (required)"`
	Season   string `json:"season" jsonschema:"Season, e.g. 2025-26 (default: current)"`
	Window   int    `json:"window" jsonschema:"Window size in games (default 5)"`
}

type trendsArgs struct {
	PlayerID int    `json:"player_id" jsonschema:"NBA player id (required)"`
	Season   string `json:"season" jsonschema:"Season, e.g. 2025-26 (default: current)"`
	RecentN  int    `json:"recent_n" jsonschema:"Recent-form window (default 5)"`
}

type zoneArgs struct {
	PlayerID int    `json:"player_id" jsonschema:"NBA player id (required)"`
	Season   string `json:"season" jsonschema:"Season, e.g. 2025-26 (default: current)"`
}

type searchArgs struct {
	Query string `json:"query" jsonschema:"Player name fragment, min 2 chars (required)"`
}

type insightArgs struct {
	PlayerID int    `json:"player_id" jsonschema:"NBA player id (required)"`
	Season   string `json:"season" jsonschema:"Season, e.g. 2025-26 (default: current)"`
	Question string `json:"question" jsonschema:"Free-form question (default: season summary)"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var (
		addr    = flag.String("addr", ":8090", "HTTP listen address")
		mcpPath = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
	)
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	baselines := stats.DefaultBaselines()
	if cfg.BaselinesFile != "" {
		baselines, err = stats.LoadBaselines(cfg.BaselinesFile)
		if err != nil {
			logger.Error("Failed to load baselines", "file", cfg.BaselinesFile, "error", err)
			os.Exit(1)
		}
	}

	st := store.New(pool.Pool)
	engine := stats.NewEngine(st, st, stats.NewZoneAnalyzer(baselines), cfg.RecentWindow)
	insights := insight.NewCache(store.NewInsightStore(pool.Pool), logger)

	var generator *anthropic.Client
	if cfg.AnthropicAPIKey != "" {
		generator = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "hooplens-mcp",
			Version: "1.0.0",
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_players",
		Description: "Search active NBA players by name fragment",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
		if len(args.Query) < 2 {
			return toolError(fmt.Errorf("query must be at least 2 characters")), nil, nil
		}
		players, err := st.SearchPlayers(ctx, args.Query)
		return toolJSON(players, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_rolling_averages",
		Description: "Fixed-window moving averages over a player's season game logs",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args rollingArgs) (*mcp.CallToolResult, any, error) {
		window := args.Window
		if window == 0 {
			window = stats.DefaultRecentWindow
		}
		points, err := engine.RollingAverages(ctx, args.PlayerID, seasonOr(args.Season), window)
		return toolJSON(points, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_trends",
		Description: "Recent-form vs season-average trend snapshot for a player",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args trendsArgs) (*mcp.CallToolResult, any, error) {
		snapshot, err := engine.Trends(ctx, args.PlayerID, seasonOr(args.Season), args.RecentN)
		return toolJSON(snapshot, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_zone_efficiency",
		Description: "Shot-zone efficiency with league-baseline diffs and strongest/weakest zones",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args zoneArgs) (*mcp.CallToolResult, any, error) {
		breakdown, err := engine.ZoneEfficiency(ctx, args.PlayerID, seasonOr(args.Season))
		return toolJSON(breakdown, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_player_summary",
		Description: "Season averages, rolling averages, trends, and zone efficiency in one call",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args rollingArgs) (*mcp.CallToolResult, any, error) {
		window := args.Window
		if window == 0 {
			window = stats.DefaultRecentWindow
		}
		summary, err := engine.Summarize(ctx, args.PlayerID, seasonOr(args.Season), window)
		return toolJSON(summary, err)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_insight",
		Description: "Narrative analysis of a player's season, cached per question",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args insightArgs) (*mcp.CallToolResult, any, error) {
		if generator == nil {
			return toolError(fmt.Errorf("insight generation is not configured")), nil, nil
		}
		season := seasonOr(args.Season)
		player, err := st.GetPlayer(ctx, args.PlayerID)
		if err != nil {
			return toolError(err), nil, nil
		}
		if player == nil {
			return toolError(fmt.Errorf("player %d not found", args.PlayerID)), nil, nil
		}

		key := insight.Key{
			PlayerID:    args.PlayerID,
			Season:      season,
			Fingerprint: insight.Fingerprint(args.Question),
		}
		cached, _, err := insights.GetOrGenerate(ctx, key, cfg.InsightTTL,
			func(ctx context.Context) (string, error) {
				return generateInsight(ctx, cfg, engine, generator, player, season, args.Question)
			})
		return toolJSON(cached, err)
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	http.Handle(*mcpPath, handler)
	logger.Info("Starting Hooplens MCP server", "addr", *addr, "path", *mcpPath)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func generateInsight(ctx context.Context, cfg *config.Config, engine *stats.Engine, generator *anthropic.Client, player *store.Player, season, question string) (string, error) {
	averages, err := engine.SeasonAverages(ctx, player.PlayerID, season)
	if err != nil {
		return "", err
	}
	recent, err := engine.RecentGames(ctx, player.PlayerID, season, insight.RecentGamesForPrompt)
	if err != nil {
		return "", err
	}
	zones, err := engine.ZoneEfficiency(ctx, player.PlayerID, season)
	if err != nil {
		return "", err
	}

	prompt := insight.BuildPrompt(insight.PromptData{
		Player: insight.PlayerInfo{
			Name:     player.FullName,
			Team:     derefOr(player.TeamAbbr, "N/A"),
			Position: derefOr(player.Position, "N/A"),
		},
		Season:   season,
		Averages: averages,
		Recent:   recent,
		Zones:    zones.Zones,
		Question: question,
	})

	genCtx, cancel := context.WithTimeout(ctx, cfg.GenerationTimeout)
	defer cancel()
	return generator.Generate(genCtx, prompt)
}

func seasonOr(season string) string {
	if season == "" {
		return config.CurrentSeason
	}
	return season
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func toolJSON(v interface{}, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
