package models

import (
	"strconv"
	"strings"
)

// LeaderEntry is one statistical leadership fact for a game
type LeaderEntry struct {
	PlayerName       string  `json:"player_name"`
	TeamAbbreviation string  `json:"team_abbreviation"`
	StatisticName    string  `json:"statistic_name"`
	DisplayValue     string  `json:"display_value"`
	HeadshotURL      *string `json:"headshot_url"`
}

// StatCode is a box score column label as ESPN publishes it
type StatCode string

const (
	StatMinutes   StatCode = "MIN"
	StatPoints    StatCode = "PTS"
	StatRebounds  StatCode = "REB"
	StatAssists   StatCode = "AST"
	StatSteals    StatCode = "STL"
	StatBlocks    StatCode = "BLK"
	StatTurnovers StatCode = "TO"
	StatFieldGoal StatCode = "FG"
)

// RecognizedStatCodes is the fixed column set projected into a PlayerLine
var RecognizedStatCodes = []StatCode{
	StatMinutes,
	StatPoints,
	StatRebounds,
	StatAssists,
	StatSteals,
	StatBlocks,
	StatTurnovers,
	StatFieldGoal,
}

// PlayerLine is one player's box score row for one game
type PlayerLine struct {
	AthleteID        string              `json:"athlete_id,omitempty"`
	ShortName        string              `json:"short_name"`
	DisplayName      string              `json:"display_name"`
	HeadshotURL      *string             `json:"headshot_url"`
	TeamAbbreviation string              `json:"team_abbreviation"`
	IsStarter        bool                `json:"is_starter"`
	DidNotPlay       bool                `json:"did_not_play"`
	Stats            map[StatCode]string `json:"stats"`
}

// Stat returns the raw display value for a code and whether it was published
func (p PlayerLine) Stat(code StatCode) (string, bool) {
	v, ok := p.Stats[code]
	return v, ok
}

// IntStat parses a counting stat, treating absent or non-numeric values as 0
func (p PlayerLine) IntStat(code StatCode) int {
	v, ok := p.Stats[code]
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return i
}

// TeamBoxScore groups one team's player lines
type TeamBoxScore struct {
	TeamID           string       `json:"team_id"`
	TeamAbbreviation string       `json:"team_abbreviation"`
	Players          []PlayerLine `json:"players"`
}
