package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/hoopboard/internal/models"
	"github.com/fortuna/hoopboard/internal/service"
)

// GameSource is the scoreboard read used by the poller
type GameSource interface {
	Scoreboard(ctx context.Context, league models.League, date time.Time) ([]models.ScoreboardEntry, error)
}

// Publisher receives live and final games
type Publisher interface {
	PublishGame(ctx context.Context, game *models.Game) error
}

// Broadcaster pushes updates to connected clients
type Broadcaster interface {
	BroadcastGame(entry models.ScoreboardEntry)
}

// Orchestrator polls league scoreboards and fans live updates out
type Orchestrator struct {
	games       GameSource
	publisher   Publisher
	broadcaster Broadcaster
	tracker     *service.StatusTracker
	config      *Config
	cancel      context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	Leagues              []models.League
	LivePollInterval     time.Duration // Default: 30s
	EnableLivePolling    bool          // Default: true
	MaxRetries           int           // Default: 3
	RetryDelay           time.Duration // Default: 5s
	MaxConsecutiveErrors int           // Default: 5
	BackoffDelay         time.Duration // Default: 20s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		Leagues:              models.Leagues,
		LivePollInterval:     30 * time.Second,
		EnableLivePolling:    true,
		MaxRetries:           3,
		RetryDelay:           5 * time.Second,
		MaxConsecutiveErrors: 5,
		BackoffDelay:         20 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator.
// publisher and broadcaster may be nil.
func NewOrchestrator(games GameSource, publisher Publisher, broadcaster Broadcaster, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}

	return &Orchestrator{
		games:       games,
		publisher:   publisher,
		broadcaster: broadcaster,
		tracker:     service.NewStatusTracker(),
		config:      config,
	}
}

// Start runs one polling loop per league until ctx is cancelled or Stop is called
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   HoopBoard Live Poller                ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Live polling: %v (interval: %v)", o.config.EnableLivePolling, o.config.LivePollInterval)
	log.Printf("Leagues: %v", o.config.Leagues)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableLivePolling {
		for _, league := range o.config.Leagues {
			go o.runLeaguePolling(ctx, league)
		}
	}

	<-ctx.Done()
	log.Println("[poller] stopping...")
}

func (o *Orchestrator) runLeaguePolling(ctx context.Context, league models.League) {
	log.Printf("[poller] → %s polling started (interval: %v)", league, o.config.LivePollInterval)

	ticker := time.NewTicker(o.config.LivePollInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	// Run immediately on start
	o.pollWithRetry(ctx, league, &consecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[poller] → %s polling stopped", league)
			return
		case <-ticker.C:
			o.pollWithRetry(ctx, league, &consecutiveErrors)
		}
	}
}

func (o *Orchestrator) pollWithRetry(ctx context.Context, league models.League, consecutiveErrors *int) {
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		if err = o.PollOnce(ctx, league); err == nil {
			*consecutiveErrors = 0
			return
		}

		log.Printf("[poller] ⚠️  %s attempt %d/%d failed: %v", league, attempt, o.config.MaxRetries, err)
		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	*consecutiveErrors++
	log.Printf("[poller] ❌ %s: all %d attempts failed. Consecutive errors: %d/%d",
		league, o.config.MaxRetries, *consecutiveErrors, o.config.MaxConsecutiveErrors)

	// Too many consecutive failures: back off before the next tick
	if o.config.MaxConsecutiveErrors > 0 && *consecutiveErrors >= o.config.MaxConsecutiveErrors {
		log.Printf("[poller] ⚠️  %s high error rate, backing off %v", league, o.config.BackoffDelay)
		select {
		case <-ctx.Done():
		case <-time.After(o.config.BackoffDelay):
		}
	}
}

// PollOnce fetches one league's scoreboard and fans out live games and
// fresh status changes. Status regressions are logged, not corrected.
func (o *Orchestrator) PollOnce(ctx context.Context, league models.League) error {
	entries, err := o.games.Scoreboard(ctx, league, time.Time{})
	if err != nil {
		return fmt.Errorf("fetching %s scoreboard: %w", league, err)
	}

	onBoard := make(map[string]bool, len(entries))
	live := 0
	for _, entry := range entries {
		game := entry.Game
		onBoard[game.ID] = true

		change, changed := o.tracker.Observe(game)
		if changed && change.Regressed {
			log.Printf("[poller] ⚠️  %s game %s status regressed %s → %s", league, game.ID, change.From, change.To)
		}

		if !game.IsLive() && !changed {
			continue
		}
		if game.IsLive() {
			live++
		}

		if o.publisher != nil && !game.IsScheduled() {
			if err := o.publisher.PublishGame(ctx, game); err != nil {
				log.Printf("[poller] ⚠️  failed to publish game %s: %v", game.ID, err)
			}
		}
		if o.broadcaster != nil {
			o.broadcaster.BroadcastGame(entry)
		}
	}
	o.tracker.Forget(league, onBoard)

	if live > 0 {
		log.Printf("[poller] ✓ %s: %d live games pushed", league, live)
	}
	return nil
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	log.Println("[poller] ✓ stopped")
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"live_polling_enabled": o.config.EnableLivePolling,
		"live_poll_interval":   o.config.LivePollInterval.String(),
		"leagues":              o.config.Leagues,
	}
}
