package nbacom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hooplens/hooplens-data/internal/stats"
)

// PlayerSummary is the roster entry shape from the commonallplayers
// endpoint, used to seed the players table.
type PlayerSummary struct {
	PlayerID int
	FullName string
	TeamAbbr string
	IsActive bool
}

// GetAllPlayers fetches the league roster for a season.
func (c *Client) GetAllPlayers(ctx context.Context, season string) ([]PlayerSummary, error) {
	params := url.Values{
		"LeagueID":            {"00"},
		"Season":              {season},
		"IsOnlyCurrentSeason": {"1"},
	}
	set, err := c.get(ctx, "/commonallplayers", "CommonAllPlayers", params)
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	players := make([]PlayerSummary, 0, len(set.rows))
	for _, row := range set.rows {
		players = append(players, PlayerSummary{
			PlayerID: set.intAt(row, "PERSON_ID"),
			FullName: set.stringAt(row, "DISPLAY_FIRST_LAST"),
			TeamAbbr: set.stringAt(row, "TEAM_ABBREVIATION"),
			IsActive: set.intAt(row, "ROSTERSTATUS") == 1,
		})
	}
	return players, nil
}

// GetGameLogs fetches every game log for a player/season in canonical
// GameRecord form. Ordering is whatever the API returns; consumers sort.
func (c *Client) GetGameLogs(ctx context.Context, playerID int, season string) ([]stats.GameRecord, error) {
	params := url.Values{
		"PlayerID":    {strconv.Itoa(playerID)},
		"Season":      {season},
		"SeasonType":  {"Regular Season"},
		"LeagueID":    {"00"},
		"MeasureType": {"Base"},
		"PerMode":     {"Totals"},
	}
	set, err := c.get(ctx, "/playergamelogs", "PlayerGameLogs", params)
	if err != nil {
		return nil, fmt.Errorf("fetch game logs for player %d: %w", playerID, err)
	}

	games := make([]stats.GameRecord, 0, len(set.rows))
	for _, row := range set.rows {
		gameDate, err := parseGameDate(set.stringAt(row, "GAME_DATE"))
		if err != nil {
			c.logger.Warn("skipping game log with bad date",
				"player_id", playerID, "game_id", set.stringAt(row, "GAME_ID"), "error", err)
			continue
		}
		games = append(games, stats.GameRecord{
			PlayerID:  playerID,
			GameID:    set.stringAt(row, "GAME_ID"),
			GameDate:  gameDate,
			Season:    season,
			Matchup:   set.stringAt(row, "MATCHUP"),
			Result:    set.stringAt(row, "WL"),
			Minutes:   set.floatAt(row, "MIN"),
			Points:    set.floatAt(row, "PTS"),
			Rebounds:  set.floatAt(row, "REB"),
			Assists:   set.floatAt(row, "AST"),
			Steals:    set.floatAt(row, "STL"),
			Blocks:    set.floatAt(row, "BLK"),
			Turnovers: set.floatAt(row, "TOV"),
			FGM:       set.floatAt(row, "FGM"),
			FGA:       set.floatAt(row, "FGA"),
			FGPct:     set.floatAt(row, "FG_PCT"),
			FG3M:      set.floatAt(row, "FG3M"),
			FG3A:      set.floatAt(row, "FG3A"),
			FG3Pct:    set.floatAt(row, "FG3_PCT"),
			FTM:       set.floatAt(row, "FTM"),
			FTA:       set.floatAt(row, "FTA"),
			FTPct:     set.floatAt(row, "FT_PCT"),
			PlusMinus: set.floatAt(row, "PLUS_MINUS"),
		})
	}
	return games, nil
}

// parseGameDate handles both timestamp and date-only forms the API emits,
// truncated to the calendar date.
func parseGameDate(raw string) (time.Time, error) {
	if len(raw) >= 10 {
		raw = raw[:10]
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse game date %q: %w", raw, err)
	}
	return t, nil
}
