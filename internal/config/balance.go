package config

// Balance holds gameplay balance configuration
type Balance struct {
	// Starting player stats
	StartingMoney  int `yaml:"starting_money" json:"starting_money"`
	StartingEnergy int `yaml:"starting_energy" json:"starting_energy"`

	// Passive income per owned junior dev, currency per second
	IncomePerDev int `yaml:"income_per_dev" json:"income_per_dev"`

	// Leveling curve: xp needed for the current level is level * XPPerLevel
	XPPerLevel          int `yaml:"xp_per_level" json:"xp_per_level"`
	LevelMaxEnergyBonus int `yaml:"level_max_energy_bonus" json:"level_max_energy_bonus"`

	// Hiring: nth hire costs floor(base_cost * HireCostGrowth^n)
	HireCostGrowth float64 `yaml:"hire_cost_growth" json:"hire_cost_growth"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		StartingMoney:       100,
		StartingEnergy:      100,
		IncomePerDev:        10,
		XPPerLevel:          100,
		LevelMaxEnergyBonus: 10,
		HireCostGrowth:      1.15,
	}
}

// Casual returns easier balance for casual players
func Casual() Balance {
	cfg := Default()
	cfg.StartingMoney = 500
	cfg.IncomePerDev = 15
	cfg.HireCostGrowth = 1.10
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.StartingMoney = 50
	cfg.XPPerLevel = 150
	cfg.HireCostGrowth = 1.25
	return cfg
}
