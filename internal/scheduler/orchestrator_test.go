package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fortuna/hoopboard/internal/models"
)

// MockSource returns a scripted sequence of scoreboards
type MockSource struct {
	mu     sync.Mutex
	boards [][]models.ScoreboardEntry
	errs   []error
	calls  int
}

func (m *MockSource) Scoreboard(ctx context.Context, league models.League, date time.Time) ([]models.ScoreboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i >= len(m.boards) {
		i = len(m.boards) - 1
	}
	return m.boards[i], nil
}

type MockPublisher struct {
	mu        sync.Mutex
	published []string
}

func (m *MockPublisher) PublishGame(ctx context.Context, game *models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, game.ID+":"+string(game.Status))
	return nil
}

type MockBroadcaster struct {
	mu      sync.Mutex
	entries []string
}

func (m *MockBroadcaster) BroadcastGame(entry models.ScoreboardEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry.Game.ID)
}

func board(statuses ...models.GameStatus) []models.ScoreboardEntry {
	ids := []string{"a", "b", "c"}
	entries := make([]models.ScoreboardEntry, len(statuses))
	for i, s := range statuses {
		entries[i] = models.ScoreboardEntry{Game: &models.Game{ID: ids[i], League: models.LeagueNBA, Status: s}}
	}
	return entries
}

func TestPollOnce_FansOutLiveAndChanges(t *testing.T) {
	source := &MockSource{boards: [][]models.ScoreboardEntry{
		board(models.StatusScheduled, models.StatusLive, models.StatusFinal),
		board(models.StatusLive, models.StatusFinal, models.StatusFinal),
	}}
	pub := &MockPublisher{}
	bc := &MockBroadcaster{}
	o := NewOrchestrator(source, pub, bc, DefaultConfig())
	ctx := context.Background()

	if err := o.PollOnce(ctx, models.LeagueNBA); err != nil {
		t.Fatalf("PollOnce() error = %v", err)
	}
	// First poll: only the live game goes out
	if len(pub.published) != 1 || pub.published[0] != "b:live" {
		t.Errorf("first poll published = %v", pub.published)
	}

	if err := o.PollOnce(ctx, models.LeagueNBA); err != nil {
		t.Fatalf("PollOnce() error = %v", err)
	}
	// Second poll: a tipped off, b went final, c unchanged
	want := []string{"b:live", "a:live", "b:final"}
	if len(pub.published) != len(want) {
		t.Fatalf("published = %v, want %v", pub.published, want)
	}
	for i := range want {
		if pub.published[i] != want[i] {
			t.Errorf("published = %v, want %v", pub.published, want)
			break
		}
	}
	if len(bc.entries) != 3 {
		t.Errorf("broadcast = %v, want 3 updates", bc.entries)
	}
}

func TestPollOnce_RegressionIsReportedNotCorrected(t *testing.T) {
	source := &MockSource{boards: [][]models.ScoreboardEntry{
		board(models.StatusFinal),
		board(models.StatusLive),
	}}
	bc := &MockBroadcaster{}
	o := NewOrchestrator(source, nil, bc, DefaultConfig())

	o.PollOnce(context.Background(), models.LeagueNBA)
	o.PollOnce(context.Background(), models.LeagueNBA)

	if len(bc.entries) != 1 || bc.entries[0] != "a" {
		t.Errorf("broadcast = %v, want the regressed game as reported", bc.entries)
	}
	if got := source.boards[1][0].Game.Status; got != models.StatusLive {
		t.Errorf("status = %s, poller must not rewrite it", got)
	}
}

func TestPollOnce_Error(t *testing.T) {
	source := &MockSource{errs: []error{errors.New("upstream down")}, boards: [][]models.ScoreboardEntry{nil}}
	o := NewOrchestrator(source, nil, nil, DefaultConfig())

	if err := o.PollOnce(context.Background(), models.LeagueNBA); err == nil {
		t.Error("expected error")
	}
}

func TestPollWithRetry(t *testing.T) {
	source := &MockSource{
		errs:   []error{errors.New("timeout"), errors.New("timeout")},
		boards: [][]models.ScoreboardEntry{board(models.StatusLive)},
	}
	config := DefaultConfig()
	config.RetryDelay = time.Millisecond
	o := NewOrchestrator(source, nil, nil, config)

	consecutive := 2
	o.pollWithRetry(context.Background(), models.LeagueNBA, &consecutive)

	if source.calls != 3 {
		t.Errorf("calls = %d, want 3", source.calls)
	}
	if consecutive != 0 {
		t.Errorf("consecutive errors = %d, want reset to 0", consecutive)
	}
}

func TestPollWithRetry_ExhaustedCountsError(t *testing.T) {
	fail := errors.New("timeout")
	source := &MockSource{errs: []error{fail, fail, fail}, boards: [][]models.ScoreboardEntry{nil}}
	config := DefaultConfig()
	config.RetryDelay = time.Millisecond
	config.BackoffDelay = time.Millisecond
	o := NewOrchestrator(source, nil, nil, config)

	consecutive := 0
	o.pollWithRetry(context.Background(), models.LeagueNBA, &consecutive)
	if consecutive != 1 {
		t.Errorf("consecutive errors = %d, want 1", consecutive)
	}
}

func TestStartStop(t *testing.T) {
	source := &MockSource{boards: [][]models.ScoreboardEntry{board(models.StatusLive)}}
	bc := &MockBroadcaster{}
	config := DefaultConfig()
	config.Leagues = []models.League{models.LeagueNBA}
	config.LivePollInterval = 10 * time.Millisecond
	o := NewOrchestrator(source, nil, bc, config)

	done := make(chan struct{})
	go func() {
		o.Start(context.Background())
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		bc.mu.Lock()
		n := len(bc.entries)
		bc.mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("poller did not broadcast")
		}
		time.Sleep(5 * time.Millisecond)
	}

	o.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestGetStatus(t *testing.T) {
	config := DefaultConfig()
	config.Leagues = []models.League{models.LeagueNCAAMB}
	config.LivePollInterval = 15 * time.Second
	o := NewOrchestrator(&MockSource{}, nil, nil, config)

	status := o.GetStatus()
	if status["live_polling_enabled"] != true || status["live_poll_interval"] != "15s" {
		t.Errorf("GetStatus() = %v", status)
	}
	leagues, ok := status["leagues"].([]models.League)
	if !ok || len(leagues) != 1 || leagues[0] != models.LeagueNCAAMB {
		t.Errorf("leagues = %v", status["leagues"])
	}
}
