package player

import (
	"sort"
	"time"

	"github.com/alvadroide/Devshop-Tycoon/internal/config"
)

// State is the single persistent player record. One instance exists for the
// lifetime of the game; it is created lazily on first access and reset in
// place, never deleted.
type State struct {
	Money      int             `json:"money"`
	Energy     int             `json:"energy"`
	MaxEnergy  int             `json:"max_energy"`
	XP         int             `json:"xp"`
	Level      int             `json:"level"`
	Upgrades   map[string]bool `json:"upgrades"`
	JuniorDevs int             `json:"junior_devs"`
	// LastUpdated marks the last moment passive income was reconciled.
	// The zero value means "never", i.e. a freshly created record.
	LastUpdated time.Time `json:"last_updated"`
}

// Defaults returns a fresh record. LastUpdated is set to now so that no
// backlog income is ever granted to a brand-new player.
func Defaults(b config.Balance, now time.Time) State {
	return State{
		Money:       b.StartingMoney,
		Energy:      b.StartingEnergy,
		MaxEnergy:   b.StartingEnergy,
		XP:          0,
		Level:       1,
		Upgrades:    map[string]bool{},
		JuniorDevs:  0,
		LastUpdated: now,
	}
}

// Normalize repairs a loaded record: nil maps, level below 1, energy above
// cap. Persisted saves from older builds stay loadable.
func Normalize(s State) State {
	if s.Upgrades == nil {
		s.Upgrades = map[string]bool{}
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if s.Energy > s.MaxEnergy {
		s.Energy = s.MaxEnergy
	}
	if s.JuniorDevs < 0 {
		s.JuniorDevs = 0
	}
	return s
}

// Clone returns an independent copy safe to hand to callers.
func Clone(s State) State {
	ups := make(map[string]bool, len(s.Upgrades))
	for k, v := range s.Upgrades {
		ups[k] = v
	}
	s.Upgrades = ups
	return s
}

// UpgradeList returns the owned upgrade ids sorted for stable output.
func (s State) UpgradeList() []string {
	out := make([]string, 0, len(s.Upgrades))
	for id, owned := range s.Upgrades {
		if owned {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot is the wire shape returned to clients after every operation.
type Snapshot struct {
	Money         int      `json:"money"`
	Energy        int      `json:"energy"`
	MaxEnergy     int      `json:"max_energy"`
	XP            int      `json:"xp"`
	Level         int      `json:"level"`
	XPToNextLevel int      `json:"xp_to_next_level"`
	Upgrades      []string `json:"upgrades"`
	JuniorDevs    int      `json:"junior_devs"`
	PassiveIncome int      `json:"passive_income"`
}

// BuildSnapshot derives the client view, including the computed
// xp_to_next_level and passive_income fields.
func (s State) BuildSnapshot(b config.Balance) Snapshot {
	return Snapshot{
		Money:         s.Money,
		Energy:        s.Energy,
		MaxEnergy:     s.MaxEnergy,
		XP:            s.XP,
		Level:         s.Level,
		XPToNextLevel: s.Level * b.XPPerLevel,
		Upgrades:      s.UpgradeList(),
		JuniorDevs:    s.JuniorDevs,
		PassiveIncome: s.JuniorDevs * b.IncomePerDev,
	}
}
