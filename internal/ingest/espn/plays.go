package espn

import (
	"fmt"
	"strings"

	"github.com/fortuna/hoopboard/internal/models"
)

// momentumFloor keeps early small leads from swinging the momentum bar to the edges
const momentumFloor = 20

// AthleteRef is what the directory knows about one athlete
type AthleteRef struct {
	Name        string
	HeadshotURL *string
}

// Directory resolves the bare ids that summary plays carry
type Directory struct {
	Teams    map[string]string     // team id -> abbreviation
	Athletes map[string]AthleteRef // athlete id -> name, headshot
}

// NewDirectory returns an empty directory
func NewDirectory() Directory {
	return Directory{
		Teams:    map[string]string{},
		Athletes: map[string]AthleteRef{},
	}
}

func (d Directory) teamAbbr(team map[string]interface{}) *string {
	if abbr := extractString(team, "abbreviation"); abbr != "" {
		upper := strings.ToUpper(abbr)
		return &upper
	}
	if abbr, ok := d.Teams[extractString(team, "id")]; ok && abbr != "" {
		return &abbr
	}
	return nil
}

func (d Directory) athlete(athlete map[string]interface{}) (*string, *string) {
	ref, known := d.Athletes[extractString(athlete, "id")]

	name := optionalString(athleteName(athlete))
	if name == nil && known {
		name = optionalString(ref.Name)
	}
	headshot := headshotURL(athlete)
	if headshot == nil && known {
		headshot = ref.HeadshotURL
	}
	return name, headshot
}

// PeriodLabel names a period: PRE for 0, Q1-Q4, then OT1, OT2, ...
func PeriodLabel(period int) string {
	switch {
	case period <= 0:
		return "PRE"
	case period <= 4:
		return fmt.Sprintf("Q%d", period)
	default:
		return fmt.Sprintf("OT%d", period-4)
	}
}

// ProcessPlays derives plays, scoring snapshots and the first scorer from a raw play list
func ProcessPlays(rawPlays interface{}) models.PlayFeed {
	return ProcessPlaysWithDirectory(rawPlays, NewDirectory())
}

// ProcessPlaysWithDirectory is ProcessPlays with id resolution for teams and participants
func ProcessPlaysWithDirectory(rawPlays interface{}, dir Directory) models.PlayFeed {
	plays := NormalizePlays(rawPlays, dir)
	return models.PlayFeed{
		Plays:       plays,
		Snapshots:   BuildSnapshots(plays),
		FirstScorer: FindFirstScorer(plays),
	}
}

// NormalizePlays maps raw plays in feed order. Scores missing from a play
// inherit the last known values and never drop below them.
func NormalizePlays(rawPlays interface{}, dir Directory) []models.Play {
	raw, _ := rawPlays.([]interface{})
	plays := make([]models.Play, 0, len(raw))

	away, home := 0, 0
	for _, playInterface := range raw {
		rawPlay, ok := asMap(playInterface)
		if !ok {
			continue
		}

		play := normalizePlay(rawPlay, dir)
		play.Sequence = len(plays)

		if v := extractOptionalInt(rawPlay, "awayScore"); v != nil && *v > away {
			away = *v
		}
		if v := extractOptionalInt(rawPlay, "homeScore"); v != nil && *v > home {
			home = *v
		}
		play.AwayScoreAfter = away
		play.HomeScoreAfter = home

		plays = append(plays, play)
	}

	return plays
}

func normalizePlay(raw map[string]interface{}, dir Directory) models.Play {
	period := 0
	switch p := raw["period"].(type) {
	case map[string]interface{}:
		period = extractInt(p, "number")
	default:
		period = parseInt(p)
	}
	if period < 0 {
		period = 0
	}

	clock := ""
	switch c := raw["clock"].(type) {
	case map[string]interface{}:
		clock = extractString(c, "displayValue")
	case string:
		clock = c
	}

	description := fallbackString(extractString(raw, "text"), extractString(extractMap(raw, "type"), "text"))

	play := models.Play{
		PeriodNumber:     period,
		PeriodLabel:      PeriodLabel(period),
		ClockDisplay:     clock,
		TeamAbbreviation: dir.teamAbbr(extractMap(raw, "team")),
		Description:      description,
		IsScoringPlay:    extractBool(raw, "scoringPlay"),
		ScoreValue:       extractInt(raw, "scoreValue"),
	}

	if participants := extractArray(raw, "participants"); len(participants) > 0 {
		first, _ := asMap(participants[0])
		play.PrimaryParticipantName, play.ParticipantHeadshotURL = dir.athlete(extractMap(first, "athlete"))
	}

	if play.IsScoringPlay || extractBool(raw, "shootingPlay") {
		play.ShotType = ClassifyShotType(description)
	}

	return play
}

// BuildSnapshots emits a START snapshot followed by one snapshot per scoring play
func BuildSnapshots(plays []models.Play) []models.Snapshot {
	snapshots := []models.Snapshot{{PeriodLabel: "START"}}

	maxDiff := 0
	for _, play := range plays {
		if !play.IsScoringPlay {
			continue
		}

		diff := play.HomeScoreAfter - play.AwayScoreAfter
		if abs(diff) > maxDiff {
			maxDiff = abs(diff)
		}

		snapshots = append(snapshots, models.Snapshot{
			AwayScore:        play.AwayScoreAfter,
			HomeScore:        play.HomeScoreAfter,
			PeriodNumber:     play.PeriodNumber,
			PeriodLabel:      play.PeriodLabel,
			ClockDisplay:     play.ClockDisplay,
			PlayText:         play.Description,
			TeamAbbreviation: play.TeamAbbreviation,
			Momentum:         float64(diff) / float64(max(maxDiff, momentumFloor)),
		})
	}

	return snapshots
}

// FindFirstScorer returns the first scoring play in feed order, or nil when there is none
func FindFirstScorer(plays []models.Play) *models.FirstScorer {
	for _, play := range plays {
		if !play.IsScoringPlay {
			continue
		}
		shot := play.ShotType
		if shot == "" {
			shot = ClassifyShotType(play.Description)
		}
		return &models.FirstScorer{
			Sequence:         play.Sequence,
			PlayerName:       play.PrimaryParticipantName,
			TeamAbbreviation: play.TeamAbbreviation,
			Description:      play.Description,
			HeadshotURL:      play.ParticipantHeadshotURL,
			AwayScore:        play.AwayScoreAfter,
			HomeScore:        play.HomeScoreAfter,
			PeriodLabel:      play.PeriodLabel,
			ClockDisplay:     play.ClockDisplay,
			ShotType:         shot,
		}
	}
	return nil
}

// GroupByPeriod buckets plays by period label. With newestFirst the plays and
// buckets are reversed; the labels are the same in either direction.
func GroupByPeriod(plays []models.Play, newestFirst bool) []models.PeriodGroup {
	ordered := make([]models.Play, len(plays))
	copy(ordered, plays)
	if newestFirst {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	var groups []models.PeriodGroup
	index := map[string]int{}
	for _, play := range ordered {
		label := PeriodLabel(play.PeriodNumber)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, models.PeriodGroup{Label: label})
		}
		groups[i].Plays = append(groups[i].Plays, play)
	}

	if groups == nil {
		return []models.PeriodGroup{}
	}
	return groups
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
