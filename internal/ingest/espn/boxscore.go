package espn

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fortuna/hoopboard/internal/models"
)

// mainBlockMinNames is the column count above which a statistics entry is
// treated as the player box score. Inferred from observed payloads.
const mainBlockMinNames = 3

// StatBlockRule records which heuristic picked a team's statistics entry
type StatBlockRule int

const (
	// StatBlockNone means the team has no statistics entries
	StatBlockNone StatBlockRule = iota
	// StatBlockMain is the widest entry with more than mainBlockMinNames columns
	StatBlockMain
	// StatBlockFirst is the first entry, used when no entry is wide enough
	StatBlockFirst
)

// RosterSource records where a team's athlete list was found
type RosterSource int

const (
	RosterNone RosterSource = iota
	// RosterNested is statistics[i].athletes, the current ESPN layout
	RosterNested
	// RosterTeamLevel is the team-level athletes field of older layouts
	RosterTeamLevel
)

// StatBlock is the statistics entry chosen for a team
type StatBlock struct {
	Rule   StatBlockRule
	Names  []string
	Source RosterSource
	Roster []interface{}
}

// SelectStatBlock picks the statistics entry most likely to hold the player table
// and resolves its roster.
func SelectStatBlock(teamStats map[string]interface{}) StatBlock {
	statistics := extractArray(teamStats, "statistics")
	var chosen map[string]interface{}
	rule := StatBlockNone

	best := -1
	for _, statInterface := range statistics {
		entry, ok := asMap(statInterface)
		if !ok {
			continue
		}
		if n := len(extractArray(entry, "names")); n > mainBlockMinNames && n > best {
			best = n
			chosen = entry
			rule = StatBlockMain
		}
	}
	if chosen == nil && len(statistics) > 0 {
		if first, ok := asMap(statistics[0]); ok {
			chosen = first
			rule = StatBlockFirst
		}
	}

	block := StatBlock{Rule: rule}
	if chosen == nil {
		chosen = map[string]interface{}{}
	}
	for _, nameInterface := range extractArray(chosen, "names") {
		name, _ := nameInterface.(string)
		block.Names = append(block.Names, name)
	}

	if roster := extractArray(chosen, "athletes"); len(roster) > 0 {
		block.Source, block.Roster = RosterNested, roster
	} else if roster := extractArray(teamStats, "athletes"); len(roster) > 0 {
		block.Source, block.Roster = RosterTeamLevel, roster
	}

	return block
}

// NormalizeBoxScore converts one team's raw statistics block into player lines.
// Players flagged didNotPlay are excluded; only published columns are populated.
func NormalizeBoxScore(teamStats map[string]interface{}) []models.PlayerLine {
	block := SelectStatBlock(teamStats)
	if block.Rule == StatBlockNone && block.Source == RosterNone {
		return []models.PlayerLine{}
	}

	// Resolve each recognized column once per team
	columns := make(map[models.StatCode]int, len(models.RecognizedStatCodes))
	for _, code := range models.RecognizedStatCodes {
		for i, name := range block.Names {
			if strings.EqualFold(strings.TrimSpace(name), string(code)) {
				columns[code] = i
				break
			}
		}
	}

	teamAbbr := strings.ToUpper(extractString(extractMap(teamStats, "team"), "abbreviation"))

	lines := make([]models.PlayerLine, 0, len(block.Roster))
	for _, athleteInterface := range block.Roster {
		athleteData, ok := asMap(athleteInterface)
		if !ok {
			continue
		}
		if extractBool(athleteData, "didNotPlay") {
			continue
		}

		athlete := extractMap(athleteData, "athlete")
		displayName := athleteName(athlete)
		line := models.PlayerLine{
			AthleteID:        extractString(athlete, "id"),
			ShortName:        fallbackString(extractString(athlete, "shortName"), displayName),
			DisplayName:      displayName,
			HeadshotURL:      headshotURL(athlete),
			TeamAbbreviation: teamAbbr,
			IsStarter:        extractBool(athleteData, "starter"),
			Stats:            make(map[models.StatCode]string, len(columns)),
		}
		if strings.TrimSpace(line.ShortName) == "" {
			continue
		}

		stats := extractArray(athleteData, "stats")
		for code, idx := range columns {
			if idx >= len(stats) {
				continue
			}
			if value, ok := stringify(stats[idx]); ok {
				line.Stats[code] = value
			}
		}

		lines = append(lines, line)
	}

	return lines
}

// NormalizeBoxScores runs NormalizeBoxScore over every team of boxscore.players
func NormalizeBoxScores(rawPlayers interface{}) []models.TeamBoxScore {
	teams, _ := rawPlayers.([]interface{})
	result := make([]models.TeamBoxScore, 0, len(teams))
	for _, teamInterface := range teams {
		teamStats, ok := asMap(teamInterface)
		if !ok {
			continue
		}
		team := extractMap(teamStats, "team")
		result = append(result, models.TeamBoxScore{
			TeamID:           extractString(team, "id"),
			TeamAbbreviation: strings.ToUpper(extractString(team, "abbreviation")),
			Players:          NormalizeBoxScore(teamStats),
		})
	}
	return result
}

// Spotlight ranks players across teams by points for the player spotlight.
// Players with neither points nor minutes are left out.
func Spotlight(teams []models.TeamBoxScore, limit int) []models.PlayerLine {
	var players []models.PlayerLine
	for _, team := range teams {
		for _, p := range team.Players {
			if p.IntStat(models.StatPoints) == 0 && minutesPlayed(p) == 0 {
				continue
			}
			players = append(players, p)
		}
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].IntStat(models.StatPoints) > players[j].IntStat(models.StatPoints)
	})

	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	if players == nil {
		return []models.PlayerLine{}
	}
	return players
}

// minutesPlayed accepts both "33" and "33:15" minute formats
func minutesPlayed(p models.PlayerLine) float64 {
	raw, ok := p.Stat(models.StatMinutes)
	if !ok {
		return 0
	}
	raw = strings.TrimSpace(raw)
	if mins, secs, found := strings.Cut(raw, ":"); found {
		m, _ := strconv.Atoi(mins)
		s, _ := strconv.Atoi(secs)
		return float64(m) + float64(s)/60.0
	}
	f, _ := strconv.ParseFloat(raw, 64)
	return f
}
