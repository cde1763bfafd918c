// Package store implements the engine's collaborator interfaces over
// Postgres. Reads go through prepared statements registered in internal/db.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hooplens/hooplens-data/internal/stats"
)

// Store is the Postgres-backed GameLogStore and ShotSource.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store over the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Player is a roster row.
type Player struct {
	PlayerID int     `json:"player_id"`
	FullName string  `json:"full_name"`
	TeamAbbr *string `json:"team_abbr"`
	Position *string `json:"position"`
}

// SearchPlayers returns active players whose name contains q.
func (s *Store) SearchPlayers(ctx context.Context, q string) ([]Player, error) {
	rows, err := s.pool.Query(ctx, "player_search", "%"+q+"%")
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.PlayerID, &p.FullName, &p.TeamAbbr, &p.Position); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayer returns one player, or nil when unknown.
func (s *Store) GetPlayer(ctx context.Context, playerID int) (*Player, error) {
	var p Player
	err := s.pool.QueryRow(ctx, "player_lookup", playerID).
		Scan(&p.PlayerID, &p.FullName, &p.TeamAbbr, &p.Position)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup player %d: %w", playerID, err)
	}
	return &p, nil
}

// FetchGameLogs returns the player's games for a season in chronological
// ascending order. limit > 0 keeps only the most recent games; the engine
// passes 0 for the whole season.
func (s *Store) FetchGameLogs(ctx context.Context, playerID int, season string, limit int) ([]stats.GameRecord, error) {
	rows, err := s.pool.Query(ctx, "game_logs_fetch", playerID, season)
	if err != nil {
		return nil, fmt.Errorf("fetch game logs: %w", err)
	}
	defer rows.Close()

	var games []stats.GameRecord
	for rows.Next() {
		var g stats.GameRecord
		err := rows.Scan(
			&g.PlayerID, &g.GameID, &g.GameDate, &g.Season, &g.Matchup, &g.Result,
			&g.Minutes, &g.Points, &g.Rebounds, &g.Assists, &g.Steals, &g.Blocks, &g.Turnovers,
			&g.FGM, &g.FGA, &g.FGPct, &g.FG3M, &g.FG3A, &g.FG3Pct,
			&g.FTM, &g.FTA, &g.FTPct, &g.PlusMinus,
		)
		if err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(games) > limit {
		games = games[len(games)-limit:]
	}
	return games, nil
}

// FetchShots returns the player's zone-tagged shot attempts for a season.
func (s *Store) FetchShots(ctx context.Context, playerID int, season string) ([]stats.Shot, error) {
	rows, err := s.pool.Query(ctx, "shots_fetch", playerID, season)
	if err != nil {
		return nil, fmt.Errorf("fetch shots: %w", err)
	}
	defer rows.Close()

	var shots []stats.Shot
	for rows.Next() {
		var zone string
		var made bool
		if err := rows.Scan(&zone, &made); err != nil {
			return nil, fmt.Errorf("scan shot: %w", err)
		}
		shots = append(shots, stats.Shot{Zone: stats.Zone(zone), Made: made})
	}
	return shots, rows.Err()
}
