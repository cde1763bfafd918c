package nbacom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooplens/hooplens-data/internal/stats"
)

const gameLogsBody = `{
  "resource": "playergamelogs",
  "resultSets": [{
    "name": "PlayerGameLogs",
    "headers": ["SEASON_YEAR","PLAYER_ID","GAME_ID","GAME_DATE","MATCHUP","WL","MIN","FGM","FGA","FG_PCT","FG3M","FG3A","FG3_PCT","FTM","FTA","FT_PCT","REB","AST","TOV","STL","BLK","PTS","PLUS_MINUS"],
    "rowSet": [
      ["2024-25",1629029,"0022400456","2025-01-15T00:00:00","DET vs. BOS","W",36.5,11,22,0.5,2,6,0.333,6,7,0.857,7,9,3,1,0,30,12],
      ["2024-25",1629029,"0022400441","2025-01-13T00:00:00","DET @ NYK","L",34.0,8,20,0.4,1,5,0.2,4,4,1.0,5,11,4,2,1,21,null]
    ]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(6000, nil)
	client.baseURL = server.URL
	return client, server.Close
}

func TestGetGameLogs(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playergamelogs", r.URL.Path)
		assert.Equal(t, "1629029", r.URL.Query().Get("PlayerID"))
		assert.Equal(t, "2024-25", r.URL.Query().Get("Season"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(gameLogsBody))
	})
	defer done()

	games, err := client.GetGameLogs(context.Background(), 1629029, "2024-25")
	require.NoError(t, err)
	require.Len(t, games, 2)

	first := games[0]
	assert.Equal(t, "0022400456", first.GameID)
	assert.Equal(t, "W", first.Result)
	require.NotNil(t, first.Points)
	assert.Equal(t, 30.0, *first.Points)
	require.NotNil(t, first.PlusMinus)
	assert.Equal(t, 12.0, *first.PlusMinus)

	// Null column stays nil, not zero.
	assert.Nil(t, games[1].PlusMinus)
}

func TestGetShotChart(t *testing.T) {
	body := `{
	  "resource": "shotchartdetail",
	  "resultSets": [{
	    "name": "Shot_Chart_Detail",
	    "headers": ["GAME_ID","GAME_DATE","SHOT_ZONE_BASIC","SHOT_ZONE_AREA","SHOT_DISTANCE","LOC_X","LOC_Y","SHOT_MADE_FLAG","SHOT_TYPE","ACTION_TYPE"],
	    "rowSet": [
	      ["0022400456","20250115","Restricted Area","Center(C)",2,10,5,1,"2PT Field Goal","Driving Layup Shot"],
	      ["0022400456","20250115","Above the Break 3","Center(C)",26,-15,260,0,"3PT Field Goal","Jump Shot"]
	    ]
	  }]
	}`
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shotchartdetail", r.URL.Path)
		assert.Equal(t, "FGA", r.URL.Query().Get("ContextMeasure"))
		w.Write([]byte(body))
	})
	defer done()

	shots, err := client.GetShotChart(context.Background(), 1629029, "2024-25")
	require.NoError(t, err)
	require.Len(t, shots, 2)

	assert.Equal(t, stats.ZoneRestrictedArea, shots[0].Zone)
	assert.True(t, shots[0].Made)
	assert.Equal(t, stats.ZoneAboveBreak3, shots[1].Zone)
	assert.False(t, shots[1].Made)
}

func TestGet_MissingResultSet(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resource":"playergamelogs","resultSets":[]}`))
	})
	defer done()

	_, err := client.GetGameLogs(context.Background(), 1, "2024-25")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result set")
}

func TestGet_UpstreamError(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	})
	defer done()

	_, err := client.GetGameLogs(context.Background(), 1, "2024-25")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
