package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/fortuna/hoopboard/internal/ingest/espn"
	"github.com/fortuna/hoopboard/internal/models"
	"github.com/fortuna/hoopboard/internal/service"
)

// espn-probe fetches live ESPN data and prints the normalized result,
// for checking the parsers against whatever ESPN is serving today.
func main() {
	var (
		leagueTag = flag.String("league", "nba", "League (nba, ncaa_mb)")
		dateStr   = flag.String("date", "", "Scoreboard date (YYYY-MM-DD), default today")
		gameID    = flag.String("game", "", "ESPN game ID; prints the game detail instead of the scoreboard")
		plays     = flag.Bool("plays", false, "With --game, print the play feed")
		baseURL   = flag.String("espn-url", espn.BaseURL, "ESPN API base URL")
	)
	flag.Parse()

	league, ok := models.ParseLeague(*leagueTag)
	if !ok {
		log.Fatalf("unknown league %q", *leagueTag)
	}

	var date time.Time
	if *dateStr != "" {
		var err error
		if date, err = time.Parse("2006-01-02", *dateStr); err != nil {
			log.Fatalf("invalid date %q: %v", *dateStr, err)
		}
	}

	games := service.NewGameService(espn.New(*baseURL, espn.DefaultTimeout), espn.DefaultTimeout, service.DefaultWorkers)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var (
		out interface{}
		err error
	)
	switch {
	case *gameID != "" && *plays:
		out, err = games.Plays(ctx, league, *gameID)
	case *gameID != "":
		out, err = games.GameDetail(ctx, league, *gameID, date)
	default:
		var entries []models.ScoreboardEntry
		entries, err = games.Scoreboard(ctx, league, date)
		if err == nil {
			log.Printf("✓ %d %s games", len(entries), league)
		}
		out = entries
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encoding output: %v", err)
	}
}
