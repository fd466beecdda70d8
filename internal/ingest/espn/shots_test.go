package espn

import (
	"testing"

	"github.com/fortuna/hoopboard/internal/models"
)

func TestClassifyShotType(t *testing.T) {
	tests := []struct {
		description string
		want        models.ShotType
	}{
		{"Curry makes 28-foot three point jumper", models.ShotThreePoint},
		{"Curry makes three-point pullup", models.ShotThreePoint},
		{"Curry makes 3-pt jump shot", models.ShotThreePoint},
		{"Curry misses 3PT step back", models.ShotThreePoint},
		{"Brunson makes free throw 1 of 2", models.ShotFreeThrow},
		{"Williamson makes alley-oop dunk", models.ShotDunk},
		{"Antetokounmpo makes driving DUNK", models.ShotDunk},
		{"Jones makes 2-pt layup", models.ShotLayup},
		{"Jones makes driving lay-up", models.ShotLayup},
		{"Jones makes lay up", models.ShotLayup},
		{"Holmgren makes alley-oop layup", models.ShotLayup},
		{"Gobert makes alley oop", models.ShotAlleyOop},
		{"Jokic makes 6-foot hook shot", models.ShotHook},
		{"Durant makes 15-foot pullup jump shot", models.ShotJumpShot},
		{"", models.ShotJumpShot},
		{"three point dunk contest", models.ShotThreePoint},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := ClassifyShotType(tt.description); got != tt.want {
				t.Errorf("ClassifyShotType(%q) = %s, want %s", tt.description, got, tt.want)
			}
		})
	}
}
