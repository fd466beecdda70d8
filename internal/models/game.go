package models

import (
	"encoding/json"
	"time"
)

// League identifies one of the supported basketball leagues
type League string

const (
	LeagueNBA    League = "nba"
	LeagueNCAAMB League = "ncaa_mb"
)

// Leagues lists every supported league in display order
var Leagues = []League{LeagueNBA, LeagueNCAAMB}

// ParseLeague resolves a league tag, accepting the original route aliases
func ParseLeague(s string) (League, bool) {
	switch s {
	case "nba":
		return LeagueNBA, true
	case "ncaa_mb", "ncaa", "mens-college-basketball":
		return LeagueNCAAMB, true
	}
	return "", false
}

// GameStatus represents the current state of a game
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusLive      GameStatus = "live"
	StatusFinal     GameStatus = "final"
)

// Rank orders statuses along the scheduled → live → final lifecycle.
func (s GameStatus) Rank() int {
	switch s {
	case StatusLive:
		return 1
	case StatusFinal:
		return 2
	default:
		return 0
	}
}

// NetworkPlaceholder is emitted when a game has no listed broadcasts
const NetworkPlaceholder = "—"

// TeamSide is one competitor's view of a game
type TeamSide struct {
	TeamID       string `json:"team_id"`
	DisplayName  string `json:"display_name"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logo_url"`
	Score        *int   `json:"score"`
	Record       string `json:"record"`
	Rank         *int   `json:"rank"`
	Linescores   []int  `json:"linescores,omitempty"`
}

// Game is one scheduled, live or completed contest.
// Status flags are derived from Status and never stored separately.
type Game struct {
	ID         string     `json:"id"`
	League     League     `json:"league"`
	Name       string     `json:"name"`
	ShortName  string     `json:"short_name"`
	Date       time.Time  `json:"date"`
	Venue      string     `json:"venue"`
	Networks   []string   `json:"networks"`
	Odds       *string    `json:"odds"`
	Status     GameStatus `json:"status"`
	Period     int        `json:"period"`
	Clock      string     `json:"clock"`
	StatusText string     `json:"status_text"`
	Home       TeamSide   `json:"home"`
	Away       TeamSide   `json:"away"`
}

func (g *Game) IsScheduled() bool { return g.Status == StatusScheduled }
func (g *Game) IsLive() bool      { return g.Status == StatusLive }
func (g *Game) IsFinal() bool     { return g.Status == StatusFinal }

// MarshalJSON adds the derived status flags for the presentation layer
func (g Game) MarshalJSON() ([]byte, error) {
	type plain Game
	return json.Marshal(struct {
		plain
		IsScheduled bool `json:"is_scheduled"`
		IsLive      bool `json:"is_live"`
		IsFinal     bool `json:"is_final"`
	}{
		plain:       plain(g),
		IsScheduled: g.IsScheduled(),
		IsLive:      g.IsLive(),
		IsFinal:     g.IsFinal(),
	})
}

// ScoreboardEntry pairs a game with its first scorer when one is known
type ScoreboardEntry struct {
	Game        *Game        `json:"game"`
	FirstScorer *FirstScorer `json:"first_scorer"`
}

// GameDetail is everything the detail view renders for one game.
// Game is nil when the event is missing from the scoreboard; Available
// reports whether the summary slices could be fetched.
type GameDetail struct {
	Game        *Game          `json:"game"`
	Plays       []Play         `json:"plays"`
	Snapshots   []Snapshot     `json:"snapshots"`
	FirstScorer *FirstScorer   `json:"first_scorer"`
	Leaders     []LeaderEntry  `json:"leaders"`
	BoxScore    []TeamBoxScore `json:"boxscore"`
	Spotlight   []PlayerLine   `json:"spotlight"`
	Available   bool           `json:"available"`
	FetchedAt   time.Time      `json:"fetched_at"`
}
