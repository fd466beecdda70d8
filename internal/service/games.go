package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fortuna/hoopboard/internal/ingest/espn"
	"github.com/fortuna/hoopboard/internal/models"
)

const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultWorkers      = 4
)

// GameService assembles normalized game data from upstream fetches
type GameService struct {
	fetcher      espn.Fetcher
	fetchTimeout time.Duration
	workers      int
	now          func() time.Time
}

// NewGameService creates a new game service.
// fetchTimeout bounds each upstream call; workers bounds parallel summary fetches.
func NewGameService(fetcher espn.Fetcher, fetchTimeout time.Duration, workers int) *GameService {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &GameService{
		fetcher:      fetcher,
		fetchTimeout: fetchTimeout,
		workers:      workers,
		now:          time.Now,
	}
}

func validateLeague(league models.League) error {
	if _, err := espn.SportPath(league); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownLeague, league)
	}
	return nil
}

// Games fetches and normalizes a scoreboard without summaries.
// The zero date is ESPN's "today".
func (s *GameService) Games(ctx context.Context, league models.League, date time.Time) ([]*models.Game, error) {
	if err := validateLeague(league); err != nil {
		return nil, err
	}

	data, err := s.fetchScoreboard(ctx, league, date)
	if err != nil {
		return nil, fmt.Errorf("%w: scoreboard: %v", ErrUpstreamUnavailable, err)
	}
	return espn.ParseScoreboard(data, league), nil
}

// Scoreboard returns the games for a date with first scorers attached.
// Summaries of started games are fetched in parallel; a failed summary
// leaves that entry's first scorer nil.
func (s *GameService) Scoreboard(ctx context.Context, league models.League, date time.Time) ([]models.ScoreboardEntry, error) {
	games, err := s.Games(ctx, league, date)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ScoreboardEntry, len(games))
	for i, game := range games {
		entries[i].Game = game
	}

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i := range entries {
		if entries[i].Game.IsScheduled() {
			continue
		}

		wg.Add(1)
		go func(entry *models.ScoreboardEntry) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			summary, err := s.fetchSummary(ctx, league, entry.Game.ID)
			if err != nil {
				log.Printf("[games] Warning: summary for %s %s unavailable: %v", league, entry.Game.ID, err)
				return
			}
			entry.FirstScorer = espn.ParseSummary(summary).Feed.FirstScorer
		}(&entries[i])
	}
	wg.Wait()

	return entries, nil
}

// GameDetail fetches the scoreboard and the summary concurrently. Either
// failure only empties its own slice of the result; both failing is an error.
func (s *GameService) GameDetail(ctx context.Context, league models.League, gameID string, date time.Time) (*models.GameDetail, error) {
	if err := validateLeague(league); err != nil {
		return nil, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("empty game id")
	}

	var (
		wg                    sync.WaitGroup
		scoreboard, summary   map[string]interface{}
		scoreboardErr, sumErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		scoreboard, scoreboardErr = s.fetchScoreboard(ctx, league, date)
	}()
	go func() {
		defer wg.Done()
		summary, sumErr = s.fetchSummary(ctx, league, gameID)
	}()
	wg.Wait()

	if scoreboardErr != nil && sumErr != nil {
		return nil, fmt.Errorf("%w: scoreboard: %v; summary: %v", ErrUpstreamUnavailable, scoreboardErr, sumErr)
	}

	detail := &models.GameDetail{
		Snapshots: []models.Snapshot{},
		Plays:     []models.Play{},
		Leaders:   []models.LeaderEntry{},
		BoxScore:  []models.TeamBoxScore{},
		Spotlight: []models.PlayerLine{},
		FetchedAt: s.now().UTC(),
	}

	if scoreboardErr != nil {
		log.Printf("[games] Warning: scoreboard for %s unavailable: %v", league, scoreboardErr)
	} else if event := espn.FindEvent(scoreboard, gameID); event != nil {
		detail.Game = espn.NormalizeGame(event, league)
	}

	if sumErr != nil {
		log.Printf("[games] Warning: summary for %s %s unavailable: %v", league, gameID, sumErr)
		return detail, nil
	}

	parsed := espn.ParseSummary(summary)
	detail.Available = true
	detail.Plays = parsed.Feed.Plays
	detail.Snapshots = parsed.Feed.Snapshots
	detail.FirstScorer = parsed.Feed.FirstScorer
	detail.Leaders = parsed.Leaders
	detail.BoxScore = parsed.BoxScore
	detail.Spotlight = parsed.Spotlight
	if detail.Game == nil {
		detail.Game = parsed.HeaderGame(league)
	}

	return detail, nil
}

// Plays returns the normalized play feed of one game
func (s *GameService) Plays(ctx context.Context, league models.League, gameID string) (models.PlayFeed, error) {
	if err := validateLeague(league); err != nil {
		return models.PlayFeed{}, err
	}

	summary, err := s.fetchSummary(ctx, league, gameID)
	if err != nil {
		return models.PlayFeed{}, fmt.Errorf("%w: summary: %v", ErrUpstreamUnavailable, err)
	}
	return espn.ParseSummary(summary).Feed, nil
}

func (s *GameService) fetchScoreboard(ctx context.Context, league models.League, date time.Time) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	return s.fetcher.FetchScoreboard(ctx, league, date)
}

func (s *GameService) fetchSummary(ctx context.Context, league models.League, gameID string) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	return s.fetcher.FetchGameSummary(ctx, league, gameID)
}
