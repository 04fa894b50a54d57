package game

import (
	"github.com/alvadroide/Devshop-Tycoon/internal/config"
	"github.com/alvadroide/Devshop-Tycoon/internal/player"
)

// ApplyLevelUp advances the player one level if accumulated xp reaches the
// current level's threshold (level * XPPerLevel). It runs at most once per
// action: an xp grant large enough to cross two thresholds still advances a
// single level, and the surplus stays banked until the next qualifying
// action.
//
// Leveling raises max energy and refills energy to the new cap.
func ApplyLevelUp(s player.State, b config.Balance) (player.State, bool) {
	needed := s.Level * b.XPPerLevel
	if s.XP < needed {
		return s, false
	}
	s.Level++
	s.XP -= needed
	s.MaxEnergy += b.LevelMaxEnergyBonus
	s.Energy = s.MaxEnergy
	return s, true
}
