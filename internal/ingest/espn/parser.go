package espn

import (
	"log"
	"strings"
	"time"

	"github.com/fortuna/hoopboard/internal/models"
)

// unrankedSentinel is the curatedRank ESPN reports for unranked teams
const unrankedSentinel = 99

// ParseScoreboard normalizes every event of a scoreboard payload.
// Events without a usable competition are skipped.
func ParseScoreboard(scoreboardData map[string]interface{}, league models.League) []*models.Game {
	events := extractArray(scoreboardData, "events")
	if len(events) == 0 {
		// No games on this date - this is normal, not an error
		return []*models.Game{}
	}

	games := make([]*models.Game, 0, len(events))
	for _, eventInterface := range events {
		event, ok := asMap(eventInterface)
		if !ok {
			continue
		}
		game := NormalizeGame(event, league)
		if game == nil {
			log.Printf("[parser] Warning: skipping event %q: no competition record", extractString(event, "id"))
			continue
		}
		games = append(games, game)
	}

	return games
}

// FindEvent returns the raw scoreboard event with the given id
func FindEvent(scoreboardData map[string]interface{}, gameID string) map[string]interface{} {
	for _, eventInterface := range extractArray(scoreboardData, "events") {
		event, ok := asMap(eventInterface)
		if ok && extractString(event, "id") == gameID {
			return event
		}
	}
	return nil
}

// NormalizeGame converts one raw scoreboard event into a Game.
// It returns nil when the event carries no competition record.
func NormalizeGame(event map[string]interface{}, league models.League) *models.Game {
	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return nil
	}
	// Only the first competition is relevant for basketball events
	comp, ok := asMap(competitions[0])
	if !ok {
		return nil
	}

	status := extractMap(event, "status")
	statusType := extractMap(status, "type")
	compStatus := extractMap(comp, "status")
	compStatusType := extractMap(compStatus, "type")

	game := &models.Game{
		ID:        extractString(event, "id"),
		League:    league,
		Name:      fallbackString(extractString(event, "name"), extractString(event, "shortName")),
		ShortName: fallbackString(extractString(event, "shortName"), extractString(event, "name")),
		Date:      parseEventDate(fallbackString(extractString(event, "date"), extractString(comp, "date"))),
		Venue:     extractString(extractMap(comp, "venue"), "fullName"),
		Networks:  parseNetworks(comp),
		Odds:      parseOdds(comp),
		Status:    parseGameStatus(statusType, compStatusType),
		Period:    firstInt("period", status, statusType, compStatus, compStatusType),
		Clock:     firstString("displayClock", status, statusType, compStatus, compStatusType),
		StatusText: fallbackString(
			extractString(statusType, "shortDetail"),
			extractString(statusType, "description"),
			extractString(statusType, "detail"),
		),
	}
	if game.Period < 0 {
		game.Period = 0
	}

	var homeRaw, awayRaw map[string]interface{}
	for _, compInterface := range extractArray(comp, "competitors") {
		competitor, ok := asMap(compInterface)
		if !ok {
			continue
		}
		switch strings.ToLower(extractString(competitor, "homeAway")) {
		case "home":
			if homeRaw == nil {
				homeRaw = competitor
			}
		case "away":
			if awayRaw == nil {
				awayRaw = competitor
			}
		}
	}

	game.Home = parseTeamSide(homeRaw)
	game.Away = parseTeamSide(awayRaw)
	applyScoreInvariant(game, homeRaw, awayRaw)

	return game
}

// parseGameStatus maps the upstream state onto the three-state lifecycle.
// The event-level type is read first, the competition-level type second.
func parseGameStatus(types ...map[string]interface{}) models.GameStatus {
	for _, statusType := range types {
		if extractBool(statusType, "completed") {
			return models.StatusFinal
		}

		switch extractString(statusType, "state") {
		case "in":
			return models.StatusLive
		case "post":
			return models.StatusFinal
		case "pre":
			return models.StatusScheduled
		}
	}

	return models.StatusScheduled
}

func parseTeamSide(competitor map[string]interface{}) models.TeamSide {
	if competitor == nil {
		return models.TeamSide{}
	}

	team := extractMap(competitor, "team")
	side := models.TeamSide{
		TeamID:       fallbackString(extractString(team, "id"), extractString(competitor, "id")),
		DisplayName:  fallbackString(extractString(team, "shortDisplayName"), extractString(team, "displayName"), extractString(team, "name")),
		Abbreviation: strings.ToUpper(extractString(team, "abbreviation")),
		LogoURL:      parseLogo(team),
	}

	if records := extractArray(competitor, "records"); len(records) > 0 {
		record, _ := asMap(records[0])
		side.Record = extractString(record, "summary")
	}

	if rank := extractOptionalInt(extractMap(competitor, "curatedRank"), "current"); rank != nil && *rank > 0 && *rank < unrankedSentinel {
		side.Rank = rank
	}

	for _, lsInterface := range extractArray(competitor, "linescores") {
		ls, ok := asMap(lsInterface)
		if !ok {
			continue
		}
		side.Linescores = append(side.Linescores, extractInt(ls, "value"))
	}

	return side
}

// applyScoreInvariant keeps scores null before tip-off and present on both sides afterwards.
func applyScoreInvariant(game *models.Game, homeRaw, awayRaw map[string]interface{}) {
	if game.IsScheduled() {
		game.Home.Score = nil
		game.Away.Score = nil
		return
	}

	game.Home.Score = startedScore(homeRaw)
	game.Away.Score = startedScore(awayRaw)
}

// startedScore reads a competitor score once the game has started.
// A missing score after tip-off means nothing has been scored yet.
func startedScore(competitor map[string]interface{}) *int {
	if competitor != nil {
		if score := extractOptionalInt(competitor, "score"); score != nil {
			return score
		}
		// Some feeds nest the score as {value, displayValue}
		if score := extractOptionalInt(extractMap(competitor, "score"), "value"); score != nil {
			return score
		}
	}
	zero := 0
	return &zero
}

func parseLogo(team map[string]interface{}) string {
	if logo := extractString(team, "logo"); logo != "" {
		return logo
	}
	for _, logoInterface := range extractArray(team, "logos") {
		logo, _ := asMap(logoInterface)
		if href := extractString(logo, "href"); href != "" {
			return href
		}
	}
	return ""
}

func parseNetworks(comp map[string]interface{}) []string {
	var networks []string
	for _, broadcastInterface := range extractArray(comp, "broadcasts") {
		broadcast, ok := asMap(broadcastInterface)
		if !ok {
			continue
		}
		for _, nameInterface := range extractArray(broadcast, "names") {
			if name, ok := nameInterface.(string); ok && strings.TrimSpace(name) != "" {
				networks = append(networks, name)
			}
		}
	}

	if len(networks) == 0 {
		return []string{models.NetworkPlaceholder}
	}
	return networks
}

func parseOdds(comp map[string]interface{}) *string {
	odds := extractArray(comp, "odds")
	if len(odds) == 0 {
		return nil
	}
	first, _ := asMap(odds[0])
	return optionalString(extractString(first, "details"))
}

// parseEventDate accepts RFC3339 and ESPN's shortened format without seconds.
func parseEventDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04Z"} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// firstInt returns the first positive value of key across the given objects.
func firstInt(key string, sources ...map[string]interface{}) int {
	for _, src := range sources {
		if v := extractOptionalInt(src, key); v != nil && *v > 0 {
			return *v
		}
	}
	return 0
}

func firstString(key string, sources ...map[string]interface{}) string {
	for _, src := range sources {
		if v := extractString(src, key); v != "" {
			return v
		}
	}
	return ""
}
