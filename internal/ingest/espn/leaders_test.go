package espn

import (
	"reflect"
	"testing"

	"github.com/fortuna/hoopboard/internal/models"
)

const teamGroupedLeaders = `[
  {"team": {"abbreviation": "bos"}, "leaders": [
    {"name": "points", "displayName": "Points", "leaders": [
      {"displayValue": "31", "athlete": {"displayName": "Jayson Tatum", "headshot": {"href": "https://a.espncdn.com/tatum.png"}}}
    ]},
    {"name": "rebounds", "leaders": [
      {"displayValue": "9", "athlete": {}}
    ]}
  ]},
  {"team": {"abbreviation": "NYK"}, "leaders": [
    {"name": "points", "displayName": "Points", "leaders": [
      {"displayValue": "27", "athlete": {"fullName": "Jalen Brunson"}}
    ]}
  ]}
]`

const flatLeaders = `[
  {"name": "points", "displayName": "Points", "leaders": [
    {"displayValue": "31", "athlete": {"displayName": "Jayson Tatum", "team": {"abbreviation": "BOS"}, "headshot": {"href": "https://a.espncdn.com/tatum.png"}}},
    {"displayValue": "27", "athlete": {"displayName": "Jalen Brunson"}, "team": {"abbreviation": "nyk"}}
  ]}
]`

func decodeValue(t *testing.T, raw string) interface{} {
	t.Helper()
	var out interface{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return out
}

func TestDetectLeadersShape(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want LeadersShape
	}{
		{"nil", nil, LeadersShapeEmpty},
		{"empty list", []interface{}{}, LeadersShapeEmpty},
		{"team grouped", decodeValue(t, teamGroupedLeaders), LeadersShapeTeamGrouped},
		{"flat", decodeValue(t, flatLeaders), LeadersShapeFlat},
		{"object", map[string]interface{}{"leaders": []interface{}{}}, LeadersShapeUnknown},
		{"list without keys", []interface{}{map[string]interface{}{"foo": 1.0}}, LeadersShapeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLeadersShape(tt.raw); got != tt.want {
				t.Errorf("DetectLeadersShape() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeLeaders_TeamGrouped(t *testing.T) {
	got := NormalizeLeaders(decodeValue(t, teamGroupedLeaders))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (nameless entry dropped): %+v", len(got), got)
	}

	first := got[0]
	if first.PlayerName != "Jayson Tatum" || first.TeamAbbreviation != "BOS" || first.StatisticName != "Points" || first.DisplayValue != "31" {
		t.Errorf("first = %+v", first)
	}
	if first.HeadshotURL == nil || *first.HeadshotURL != "https://a.espncdn.com/tatum.png" {
		t.Errorf("first.HeadshotURL = %v", first.HeadshotURL)
	}
	if got[1].PlayerName != "Jalen Brunson" || got[1].TeamAbbreviation != "NYK" || got[1].HeadshotURL != nil {
		t.Errorf("second = %+v", got[1])
	}
}

func TestNormalizeLeaders_ShapeEquivalence(t *testing.T) {
	grouped := NormalizeLeaders(decodeValue(t, teamGroupedLeaders))
	flat := NormalizeLeaders(decodeValue(t, flatLeaders))

	if !reflect.DeepEqual(grouped, flat) {
		t.Errorf("equivalent layouts normalize differently:\ngrouped: %+v\nflat:    %+v", grouped, flat)
	}
}

func TestNormalizeLeaders_Empty(t *testing.T) {
	for _, raw := range []interface{}{nil, []interface{}{}, "garbage", map[string]interface{}{}} {
		got := NormalizeLeaders(raw)
		if got == nil || len(got) != 0 {
			t.Errorf("NormalizeLeaders(%v) = %v, want empty non-nil slice", raw, got)
		}
	}
}

func TestNormalizeLeaders_StatisticNameFallback(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"name":         "assists",
			"displayValue": "12",
			"leaders": []interface{}{
				map[string]interface{}{"athlete": map[string]interface{}{"displayName": "Trae Young", "headshot": "https://a.espncdn.com/young.png"}},
			},
		},
	}

	got := NormalizeLeaders(raw)
	want := []models.LeaderEntry{{
		PlayerName:    "Trae Young",
		StatisticName: "assists",
		DisplayValue:  "12",
		HeadshotURL:   strPtr("https://a.espncdn.com/young.png"),
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeLeaders_EntryValueWinsOverCategory(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"name":         "points",
			"displayValue": "Points",
			"leaders": []interface{}{
				map[string]interface{}{
					"displayValue": "34",
					"athlete":      map[string]interface{}{"displayName": "Jayson Tatum"},
				},
			},
		},
	}

	got := NormalizeLeaders(raw)
	if len(got) != 1 || got[0].DisplayValue != "34" {
		t.Errorf("got %+v, want the leader's own value 34", got)
	}
}

func strPtr(s string) *string { return &s }
