package nbacom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hooplens/hooplens-data/internal/stats"
)

// ShotDetail is one raw shot attempt with chart coordinates, as stored in
// the shot_chart table. The engine only needs (zone, made); the rest is
// kept for chart rendering.
type ShotDetail struct {
	GameID       string
	GameDate     string // YYYYMMDD as the API emits it
	Zone         stats.Zone
	ZoneArea     string
	ShotDistance int
	LocX         int
	LocY         int
	Made         bool
	ShotType     string
	ActionType   string
}

// GetShotChart fetches every shot attempt for a player/season.
func (c *Client) GetShotChart(ctx context.Context, playerID int, season string) ([]ShotDetail, error) {
	params := url.Values{
		"PlayerID":       {strconv.Itoa(playerID)},
		"TeamID":         {"0"},
		"Season":         {season},
		"SeasonType":     {"Regular Season"},
		"LeagueID":       {"00"},
		"ContextMeasure": {"FGA"},
	}
	set, err := c.get(ctx, "/shotchartdetail", "Shot_Chart_Detail", params)
	if err != nil {
		return nil, fmt.Errorf("fetch shot chart for player %d: %w", playerID, err)
	}

	shots := make([]ShotDetail, 0, len(set.rows))
	for _, row := range set.rows {
		shots = append(shots, ShotDetail{
			GameID:       set.stringAt(row, "GAME_ID"),
			GameDate:     set.stringAt(row, "GAME_DATE"),
			Zone:         stats.Zone(set.stringAt(row, "SHOT_ZONE_BASIC")),
			ZoneArea:     set.stringAt(row, "SHOT_ZONE_AREA"),
			ShotDistance: set.intAt(row, "SHOT_DISTANCE"),
			LocX:         set.intAt(row, "LOC_X"),
			LocY:         set.intAt(row, "LOC_Y"),
			Made:         set.intAt(row, "SHOT_MADE_FLAG") == 1,
			ShotType:     set.stringAt(row, "SHOT_TYPE"),
			ActionType:   set.stringAt(row, "ACTION_TYPE"),
		})
	}
	return shots, nil
}
