package espn

import (
	"strings"

	"github.com/fortuna/hoopboard/internal/models"
)

// SpotlightSize is the number of players shown in the player spotlight
const SpotlightSize = 12

// Summary is a game summary payload split into normalized slices
type Summary struct {
	Feed      models.PlayFeed
	Leaders   []models.LeaderEntry
	BoxScore  []models.TeamBoxScore
	Spotlight []models.PlayerLine
	Directory Directory

	header map[string]interface{}
}

// ParseSummary normalizes every slice of a summary payload.
// Missing slices come back empty.
func ParseSummary(summaryData map[string]interface{}) Summary {
	dir := BuildDirectory(summaryData)
	boxScore := NormalizeBoxScores(extractMap(summaryData, "boxscore")["players"])

	return Summary{
		Feed:      ProcessPlaysWithDirectory(summaryData["plays"], dir),
		Leaders:   NormalizeLeaders(summaryData["leaders"]),
		BoxScore:  boxScore,
		Spotlight: Spotlight(boxScore, SpotlightSize),
		Directory: dir,
		header:    extractMap(summaryData, "header"),
	}
}

// HeaderGame normalizes the summary header, which has the same competition
// layout as a scoreboard event. Used when the scoreboard lookup fails.
func (s Summary) HeaderGame(league models.League) *models.Game {
	if len(s.header) == 0 {
		return nil
	}
	return NormalizeGame(s.header, league)
}

// BuildDirectory collects team and athlete ids from the header competitors
// and the box score so that id-only plays can be resolved.
func BuildDirectory(summaryData map[string]interface{}) Directory {
	dir := NewDirectory()

	addTeam := func(team map[string]interface{}) {
		id := extractString(team, "id")
		abbr := strings.ToUpper(extractString(team, "abbreviation"))
		if id == "" || abbr == "" {
			return
		}
		if _, exists := dir.Teams[id]; !exists {
			dir.Teams[id] = abbr
		}
	}

	header := extractMap(summaryData, "header")
	for _, compInterface := range extractArray(header, "competitions") {
		comp, _ := asMap(compInterface)
		for _, competitorInterface := range extractArray(comp, "competitors") {
			competitor, _ := asMap(competitorInterface)
			addTeam(extractMap(competitor, "team"))
		}
	}

	boxscore := extractMap(summaryData, "boxscore")
	for _, teamInterface := range extractArray(boxscore, "teams") {
		teamData, _ := asMap(teamInterface)
		addTeam(extractMap(teamData, "team"))
	}

	for _, teamInterface := range extractArray(boxscore, "players") {
		teamStats, _ := asMap(teamInterface)
		addTeam(extractMap(teamStats, "team"))

		for _, statInterface := range extractArray(teamStats, "statistics") {
			stat, _ := asMap(statInterface)
			addAthletes(dir, extractArray(stat, "athletes"))
		}
		addAthletes(dir, extractArray(teamStats, "athletes"))
	}

	return dir
}

func addAthletes(dir Directory, roster []interface{}) {
	for _, athleteInterface := range roster {
		athleteData, _ := asMap(athleteInterface)
		athlete := extractMap(athleteData, "athlete")
		id := extractString(athlete, "id")
		if id == "" {
			continue
		}
		if _, exists := dir.Athletes[id]; exists {
			continue
		}
		dir.Athletes[id] = AthleteRef{
			Name:        athleteName(athlete),
			HeadshotURL: headshotURL(athlete),
		}
	}
}
