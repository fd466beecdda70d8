package models

// ShotType is a heuristic classification of a play description
type ShotType string

const (
	ShotThreePoint ShotType = "THREE_POINT"
	ShotFreeThrow  ShotType = "FREE_THROW"
	ShotDunk       ShotType = "DUNK"
	ShotLayup      ShotType = "LAYUP"
	ShotAlleyOop   ShotType = "ALLEY_OOP"
	ShotHook       ShotType = "HOOK"
	ShotJumpShot   ShotType = "JUMP_SHOT"
)

// Play is one discrete event from the play-by-play feed.
// Scores are cumulative after the play and never decrease along the feed.
type Play struct {
	Sequence               int      `json:"sequence"`
	PeriodNumber           int      `json:"period_number"`
	PeriodLabel            string   `json:"period_label"`
	ClockDisplay           string   `json:"clock_display"`
	TeamAbbreviation       *string  `json:"team_abbreviation"`
	Description            string   `json:"description"`
	IsScoringPlay          bool     `json:"is_scoring_play"`
	ScoreValue             int      `json:"score_value"`
	AwayScoreAfter         int      `json:"away_score_after"`
	HomeScoreAfter         int      `json:"home_score_after"`
	PrimaryParticipantName *string  `json:"primary_participant_name"`
	ParticipantHeadshotURL *string  `json:"participant_headshot_url,omitempty"`
	ShotType               ShotType `json:"shot_type,omitempty"`
}

// Snapshot is the game state right after a scoring play
type Snapshot struct {
	AwayScore        int     `json:"away_score"`
	HomeScore        int     `json:"home_score"`
	PeriodNumber     int     `json:"period_number"`
	PeriodLabel      string  `json:"period_label"`
	ClockDisplay     string  `json:"clock_display"`
	PlayText         string  `json:"play_text"`
	TeamAbbreviation *string `json:"team_abbreviation"`
	Momentum         float64 `json:"momentum"`
}

// FirstScorer describes the first scoring play of a game
type FirstScorer struct {
	Sequence         int      `json:"sequence"`
	PlayerName       *string  `json:"player_name"`
	TeamAbbreviation *string  `json:"team_abbreviation"`
	Description      string   `json:"description"`
	HeadshotURL      *string  `json:"headshot_url"`
	AwayScore        int      `json:"away_score"`
	HomeScore        int      `json:"home_score"`
	PeriodLabel      string   `json:"period_label"`
	ClockDisplay     string   `json:"clock_display"`
	ShotType         ShotType `json:"shot_type"`
}

// PlayFeed bundles the outputs derived from one play-by-play list
type PlayFeed struct {
	Plays       []Play       `json:"plays"`
	Snapshots   []Snapshot   `json:"snapshots"`
	FirstScorer *FirstScorer `json:"first_scorer"`
}

// PeriodGroup is a labeled bucket of plays for display
type PeriodGroup struct {
	Label string `json:"label"`
	Plays []Play `json:"plays"`
}
