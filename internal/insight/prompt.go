package insight

import (
	"encoding/json"
	"fmt"

	"github.com/hooplens/hooplens-data/internal/stats"
)

// PlayerInfo is the minimal profile context handed to the generator.
type PlayerInfo struct {
	Name     string
	Team     string
	Position string
}

// PromptData is everything the engine hands to the narrative generator: the
// season baseline, a recent game slice, and the zone breakdown. The engine
// decides what data the generator sees; the generator decides what to say.
type PromptData struct {
	Player   PlayerInfo
	Season   string
	Averages stats.SeasonAverages
	Recent   []stats.GameRecord
	Zones    []stats.ZoneStat
	Question string
}

// RecentGamesForPrompt is how many recent games the generator sees.
const RecentGamesForPrompt = 20

// BuildPrompt renders the analyst prompt. Data sections are serialized as
// JSON so the generator sees exact numbers, not prose approximations.
func BuildPrompt(d PromptData) string {
	question := d.Question
	if question == "" {
		question = fmt.Sprintf(
			"Why is %s having the season they're having? What are the key drivers of their performance?",
			d.Player.Name)
	}

	averages, _ := json.Marshal(d.Averages)
	recent, _ := json.Marshal(d.Recent)
	zones, _ := json.Marshal(d.Zones)

	return fmt.Sprintf(`You are an expert NBA analyst. Use the data below to answer the question.

Player: %s (%s, %s)
Season: %s

SEASON AVERAGES: %s
RECENT GAMES: %s
SHOT ZONES: %s

QUESTION: %s

Respond with a 3-5 paragraph analysis citing specific numbers and the 2-3 biggest performance factors. Plain text only, no markdown.`,
		d.Player.Name, d.Player.Team, d.Player.Position,
		d.Season, averages, recent, zones, question)
}
