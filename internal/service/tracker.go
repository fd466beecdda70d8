package service

import (
	"strings"
	"sync"

	"github.com/fortuna/hoopboard/internal/models"
)

// StatusChange describes a status transition observed between two polls
type StatusChange struct {
	GameID    string
	League    models.League
	From      models.GameStatus
	To        models.GameStatus
	Regressed bool
}

// StatusTracker remembers the last observed status per game. Upstream feeds
// occasionally flip a final game back to live; the tracker reports such
// regressions but leaves the reported status as ESPN sent it.
type StatusTracker struct {
	mu   sync.Mutex
	last map[string]models.GameStatus
}

// NewStatusTracker creates an empty tracker
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{last: make(map[string]models.GameStatus)}
}

// Observe records a game's status and returns the change, if any.
// The first observation of a game is not a change.
func (t *StatusTracker) Observe(game *models.Game) (StatusChange, bool) {
	key := string(game.League) + ":" + game.ID

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.last[key]
	t.last[key] = game.Status
	if !seen || prev == game.Status {
		return StatusChange{}, false
	}

	return StatusChange{
		GameID:    game.ID,
		League:    game.League,
		From:      prev,
		To:        game.Status,
		Regressed: game.Status.Rank() < prev.Rank(),
	}, true
}

// Forget drops games that are no longer on the scoreboard
func (t *StatusTracker) Forget(league models.League, keep map[string]bool) {
	prefix := string(league) + ":"

	t.mu.Lock()
	defer t.mu.Unlock()

	for key := range t.last {
		if id, ok := strings.CutPrefix(key, prefix); ok && !keep[id] {
			delete(t.last, key)
		}
	}
}
