package espn

import (
	"reflect"
	"testing"
	"time"

	"github.com/fortuna/hoopboard/internal/models"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return out
}

const liveEvent = `{
  "id": "401584",
  "name": "Boston Celtics at New York Knicks",
  "shortName": "BOS @ NYK",
  "date": "2024-01-15T00:30Z",
  "status": {"period": 3, "displayClock": "4:12", "type": {"state": "in", "shortDetail": "4:12 - 3rd Quarter"}},
  "competitions": [{
    "venue": {"fullName": "Madison Square Garden"},
    "broadcasts": [{"names": ["ESPN"]}, {"names": ["MSG"]}],
    "odds": [{"details": "BOS -4.5"}],
    "competitors": [
      {"homeAway": "home", "score": "84", "team": {"id": "18", "abbreviation": "nyk", "shortDisplayName": "Knicks", "displayName": "New York Knicks", "logo": "https://a.espncdn.com/nyk.png"}, "records": [{"summary": "24-17"}], "linescores": [{"value": 30}, {"value": 28}, {"value": 26}]},
      {"homeAway": "away", "score": 88, "team": {"id": "2", "abbreviation": "BOS", "displayName": "Boston Celtics", "logos": [{"href": "https://a.espncdn.com/bos.png"}]}, "records": [{"summary": "31-9"}], "curatedRank": {"current": 99}}
    ]
  }]
}`

func TestNormalizeGame_LiveScenario(t *testing.T) {
	game := NormalizeGame(decode(t, liveEvent), models.LeagueNBA)
	if game == nil {
		t.Fatal("NormalizeGame() = nil, want game")
	}

	if game.Status != models.StatusLive {
		t.Errorf("Status = %s, want live", game.Status)
	}
	if !game.IsLive() || game.IsScheduled() || game.IsFinal() {
		t.Errorf("status flags = scheduled:%v live:%v final:%v, want only live", game.IsScheduled(), game.IsLive(), game.IsFinal())
	}
	if game.Period != 3 || game.Clock != "4:12" {
		t.Errorf("Period/Clock = %d/%q, want 3/\"4:12\"", game.Period, game.Clock)
	}
	if game.Away.Score == nil || *game.Away.Score != 88 {
		t.Errorf("Away.Score = %v, want 88", game.Away.Score)
	}
	if game.Home.Score == nil || *game.Home.Score != 84 {
		t.Errorf("Home.Score = %v, want 84", game.Home.Score)
	}
	if game.Home.Abbreviation != "NYK" || game.Away.Abbreviation != "BOS" {
		t.Errorf("abbreviations = %s/%s, want NYK/BOS", game.Home.Abbreviation, game.Away.Abbreviation)
	}
	if game.Home.DisplayName != "Knicks" {
		t.Errorf("Home.DisplayName = %q, want short display name", game.Home.DisplayName)
	}
	if game.Away.LogoURL != "https://a.espncdn.com/bos.png" {
		t.Errorf("Away.LogoURL = %q, want logos[0].href", game.Away.LogoURL)
	}
	if game.Away.Rank != nil {
		t.Errorf("Away.Rank = %d, want nil for unranked sentinel", *game.Away.Rank)
	}
	if game.Home.Record != "24-17" {
		t.Errorf("Home.Record = %q, want 24-17", game.Home.Record)
	}
	if !reflect.DeepEqual(game.Home.Linescores, []int{30, 28, 26}) {
		t.Errorf("Home.Linescores = %v", game.Home.Linescores)
	}
	if !reflect.DeepEqual(game.Networks, []string{"ESPN", "MSG"}) {
		t.Errorf("Networks = %v, want [ESPN MSG]", game.Networks)
	}
	if game.Odds == nil || *game.Odds != "BOS -4.5" {
		t.Errorf("Odds = %v, want BOS -4.5", game.Odds)
	}
	if game.Venue != "Madison Square Garden" {
		t.Errorf("Venue = %q", game.Venue)
	}
	if game.StatusText != "4:12 - 3rd Quarter" {
		t.Errorf("StatusText = %q", game.StatusText)
	}
	want := time.Date(2024, 1, 15, 0, 30, 0, 0, time.UTC)
	if !game.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", game.Date, want)
	}
}

func TestNormalizeGame_Status(t *testing.T) {
	tests := []struct {
		name   string
		status map[string]interface{}
		want   models.GameStatus
	}{
		{"pre", map[string]interface{}{"type": map[string]interface{}{"state": "pre"}}, models.StatusScheduled},
		{"in", map[string]interface{}{"type": map[string]interface{}{"state": "in"}}, models.StatusLive},
		{"post", map[string]interface{}{"type": map[string]interface{}{"state": "post"}}, models.StatusFinal},
		{"completed flag", map[string]interface{}{"type": map[string]interface{}{"state": "in", "completed": true}}, models.StatusFinal},
		{"unknown state", map[string]interface{}{"type": map[string]interface{}{"state": "delayed"}}, models.StatusScheduled},
		{"missing", map[string]interface{}{}, models.StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := map[string]interface{}{
				"id":     "1",
				"status": tt.status,
				"competitions": []interface{}{
					map[string]interface{}{"competitors": []interface{}{}},
				},
			}
			game := NormalizeGame(event, models.LeagueNBA)
			if game.Status != tt.want {
				t.Errorf("Status = %s, want %s", game.Status, tt.want)
			}

			flags := 0
			for _, f := range []bool{game.IsScheduled(), game.IsLive(), game.IsFinal()} {
				if f {
					flags++
				}
			}
			if flags != 1 {
				t.Errorf("%d status flags set, want exactly 1", flags)
			}
		})
	}
}

func TestNormalizeGame_ScoreInvariant(t *testing.T) {
	competitors := func() []interface{} {
		return []interface{}{
			map[string]interface{}{"homeAway": "home", "score": "0", "team": map[string]interface{}{"abbreviation": "LAL"}},
			map[string]interface{}{"homeAway": "away", "team": map[string]interface{}{"abbreviation": "GSW"}},
		}
	}

	tests := []struct {
		state      string
		wantScores bool
	}{
		{"pre", false},
		{"in", true},
		{"post", true},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			event := map[string]interface{}{
				"status":       map[string]interface{}{"type": map[string]interface{}{"state": tt.state}},
				"competitions": []interface{}{map[string]interface{}{"competitors": competitors()}},
			}
			game := NormalizeGame(event, models.LeagueNBA)

			if (game.Home.Score != nil) != tt.wantScores || (game.Away.Score != nil) != tt.wantScores {
				t.Fatalf("scores present = home:%v away:%v, want %v", game.Home.Score != nil, game.Away.Score != nil, tt.wantScores)
			}
			if tt.wantScores && *game.Away.Score != 0 {
				t.Errorf("missing away score = %d, want 0", *game.Away.Score)
			}
		})
	}
}

func TestNormalizeGame_PeriodFallbackOrder(t *testing.T) {
	event := map[string]interface{}{
		"status": map[string]interface{}{"type": map[string]interface{}{"state": "in"}},
		"competitions": []interface{}{
			map[string]interface{}{
				"status": map[string]interface{}{"period": float64(2), "displayClock": "7:45"},
			},
		},
	}
	game := NormalizeGame(event, models.LeagueNCAAMB)
	if game.Period != 2 || game.Clock != "7:45" {
		t.Errorf("Period/Clock = %d/%q, want 2/\"7:45\" from competition status", game.Period, game.Clock)
	}
	if game.League != models.LeagueNCAAMB {
		t.Errorf("League = %s", game.League)
	}
}

func TestNormalizeGame_NoCompetition(t *testing.T) {
	tests := []struct {
		name  string
		event map[string]interface{}
	}{
		{"missing", map[string]interface{}{"id": "1"}},
		{"empty", map[string]interface{}{"id": "1", "competitions": []interface{}{}}},
		{"not an object", map[string]interface{}{"id": "1", "competitions": []interface{}{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeGame(tt.event, models.LeagueNBA); got != nil {
				t.Errorf("NormalizeGame() = %+v, want nil", got)
			}
		})
	}
}

func TestNormalizeGame_Defaults(t *testing.T) {
	event := map[string]interface{}{
		"id":           "9",
		"shortName":    "UK @ DUKE",
		"competitions": []interface{}{map[string]interface{}{}},
	}
	game := NormalizeGame(event, models.LeagueNCAAMB)

	if !reflect.DeepEqual(game.Networks, []string{models.NetworkPlaceholder}) {
		t.Errorf("Networks = %v, want placeholder", game.Networks)
	}
	if game.Odds != nil {
		t.Errorf("Odds = %v, want nil", *game.Odds)
	}
	if game.Name != "UK @ DUKE" || game.ShortName != "UK @ DUKE" {
		t.Errorf("Name/ShortName = %q/%q", game.Name, game.ShortName)
	}
	if game.Home.TeamID != "" || game.Away.Abbreviation != "" {
		t.Errorf("unresolved sides should be zero values, got %+v / %+v", game.Home, game.Away)
	}
	if !game.Date.IsZero() {
		t.Errorf("Date = %v, want zero", game.Date)
	}
}

func TestNormalizeGame_Rank(t *testing.T) {
	tests := []struct {
		rank interface{}
		want *int
	}{
		{float64(5), intPtr(5)},
		{float64(99), nil},
		{float64(0), nil},
		{"12", intPtr(12)},
	}

	for _, tt := range tests {
		side := parseTeamSide(map[string]interface{}{
			"curatedRank": map[string]interface{}{"current": tt.rank},
		})
		if !reflect.DeepEqual(side.Rank, tt.want) {
			t.Errorf("rank %v: got %v, want %v", tt.rank, side.Rank, tt.want)
		}
	}
}

func TestNormalizeGame_Idempotent(t *testing.T) {
	event := decode(t, liveEvent)
	first := NormalizeGame(event, models.LeagueNBA)
	second := NormalizeGame(event, models.LeagueNBA)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalizing the same event twice differs:\n%+v\n%+v", first, second)
	}
}

func TestParseScoreboard(t *testing.T) {
	data := decode(t, `{"events": [`+liveEvent+`, {"id": "bad"}, "junk"]}`)
	games := ParseScoreboard(data, models.LeagueNBA)
	if len(games) != 1 {
		t.Fatalf("len(games) = %d, want 1", len(games))
	}
	if games[0].ID != "401584" {
		t.Errorf("games[0].ID = %s", games[0].ID)
	}

	if got := ParseScoreboard(map[string]interface{}{}, models.LeagueNBA); got == nil || len(got) != 0 {
		t.Errorf("empty scoreboard = %v, want empty slice", got)
	}
}

func TestFindEvent(t *testing.T) {
	data := decode(t, `{"events": [{"id": "1"}, {"id": "2", "name": "second"}]}`)
	if ev := FindEvent(data, "2"); extractString(ev, "name") != "second" {
		t.Errorf("FindEvent(2) = %v", ev)
	}
	if ev := FindEvent(data, "3"); ev != nil {
		t.Errorf("FindEvent(3) = %v, want nil", ev)
	}
}

func intPtr(v int) *int { return &v }
