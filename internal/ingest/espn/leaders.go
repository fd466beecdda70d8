package espn

import (
	"strings"

	"github.com/fortuna/hoopboard/internal/models"
)

// LeadersShape names the layouts ESPN uses for statistical leaders
type LeadersShape int

const (
	// LeadersShapeEmpty is an absent value or an empty list
	LeadersShapeEmpty LeadersShape = iota
	// LeadersShapeFlat is [{name, leaders: [{athlete, displayValue}]}]
	LeadersShapeFlat
	// LeadersShapeTeamGrouped is [{team, leaders: [{displayName, leaders: [{athlete, displayValue}]}]}]
	LeadersShapeTeamGrouped
	// LeadersShapeUnknown is a non-empty value matching neither layout
	LeadersShapeUnknown
)

func (s LeadersShape) String() string {
	switch s {
	case LeadersShapeEmpty:
		return "empty"
	case LeadersShapeFlat:
		return "flat"
	case LeadersShapeTeamGrouped:
		return "team_grouped"
	default:
		return "unknown"
	}
}

// DetectLeadersShape classifies a raw leaders value.
// A team key on any outer element selects the team-grouped layout.
func DetectLeadersShape(raw interface{}) LeadersShape {
	groups, ok := raw.([]interface{})
	if !ok || len(groups) == 0 {
		if raw == nil || ok {
			return LeadersShapeEmpty
		}
		return LeadersShapeUnknown
	}

	sawLeaders := false
	for _, groupInterface := range groups {
		group, ok := asMap(groupInterface)
		if !ok {
			continue
		}
		if hasKey(group, "team") {
			return LeadersShapeTeamGrouped
		}
		if hasKey(group, "leaders") {
			sawLeaders = true
		}
	}

	if sawLeaders {
		return LeadersShapeFlat
	}
	return LeadersShapeUnknown
}

// NormalizeLeaders flattens either leaders layout into LeaderEntry values.
// Entries without a resolvable player name are dropped.
func NormalizeLeaders(raw interface{}) []models.LeaderEntry {
	switch DetectLeadersShape(raw) {
	case LeadersShapeTeamGrouped:
		return normalizeTeamGroupedLeaders(raw.([]interface{}))
	case LeadersShapeFlat:
		return normalizeFlatLeaders(raw.([]interface{}))
	default:
		return []models.LeaderEntry{}
	}
}

func normalizeTeamGroupedLeaders(groups []interface{}) []models.LeaderEntry {
	result := []models.LeaderEntry{}
	for _, groupInterface := range groups {
		group, ok := asMap(groupInterface)
		if !ok {
			continue
		}
		teamAbbr := strings.ToUpper(extractString(extractMap(group, "team"), "abbreviation"))

		for _, catInterface := range extractArray(group, "leaders") {
			category, ok := asMap(catInterface)
			if !ok {
				continue
			}
			for _, entryInterface := range extractArray(category, "leaders") {
				entry, ok := asMap(entryInterface)
				if !ok {
					continue
				}
				if leader, ok := buildLeaderEntry(category, entry, teamAbbr); ok {
					result = append(result, leader)
				}
			}
		}
	}
	return result
}

func normalizeFlatLeaders(categories []interface{}) []models.LeaderEntry {
	result := []models.LeaderEntry{}
	for _, catInterface := range categories {
		category, ok := asMap(catInterface)
		if !ok {
			continue
		}
		for _, entryInterface := range extractArray(category, "leaders") {
			entry, ok := asMap(entryInterface)
			if !ok {
				continue
			}
			athlete := extractMap(entry, "athlete")
			teamAbbr := fallbackString(
				extractString(extractMap(athlete, "team"), "abbreviation"),
				extractString(extractMap(entry, "team"), "abbreviation"),
			)
			if leader, ok := buildLeaderEntry(category, entry, strings.ToUpper(teamAbbr)); ok {
				result = append(result, leader)
			}
		}
	}
	return result
}

func buildLeaderEntry(category, entry map[string]interface{}, teamAbbr string) (models.LeaderEntry, bool) {
	athlete := extractMap(entry, "athlete")
	name := strings.TrimSpace(athleteName(athlete))
	if name == "" {
		return models.LeaderEntry{}, false
	}

	return models.LeaderEntry{
		PlayerName:       name,
		TeamAbbreviation: teamAbbr,
		StatisticName:    fallbackString(extractString(category, "displayName"), extractString(category, "name")),
		DisplayValue:     fallbackString(extractString(entry, "displayValue"), extractString(category, "displayValue")),
		HeadshotURL:      headshotURL(athlete),
	}, true
}
