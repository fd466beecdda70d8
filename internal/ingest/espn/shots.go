package espn

import (
	"strings"

	"github.com/fortuna/hoopboard/internal/models"
)

type shotRule struct {
	shot    models.ShotType
	phrases []string
}

// shotRules are evaluated in order and the first match wins, so an
// "alley-oop dunk" is a DUNK and an "alley-oop layup" is a LAYUP.
var shotRules = []shotRule{
	{models.ShotThreePoint, []string{"three point", "three-point", "3-pt", "3pt"}},
	{models.ShotFreeThrow, []string{"free throw"}},
	{models.ShotDunk, []string{"dunk"}},
	{models.ShotLayup, []string{"layup", "lay-up", "lay up"}},
	{models.ShotAlleyOop, []string{"alley"}},
	{models.ShotHook, []string{"hook"}},
}

// ClassifyShotType guesses the shot type from a play description.
// Anything unmatched is a jump shot.
func ClassifyShotType(description string) models.ShotType {
	text := strings.ToLower(description)
	for _, rule := range shotRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(text, phrase) {
				return rule.shot
			}
		}
	}
	return models.ShotJumpShot
}
