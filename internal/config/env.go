package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables
// Falls back to defaults if variables are not set
func FromEnv() Balance {
	cfg := Default()

	if val := getEnvInt("DEVSHOP_STARTING_MONEY"); val > 0 {
		cfg.StartingMoney = val
	}
	if val := getEnvInt("DEVSHOP_STARTING_ENERGY"); val > 0 {
		cfg.StartingEnergy = val
	}
	if val := getEnvInt("DEVSHOP_INCOME_PER_DEV"); val > 0 {
		cfg.IncomePerDev = val
	}
	if val := getEnvInt("DEVSHOP_XP_PER_LEVEL"); val > 0 {
		cfg.XPPerLevel = val
	}
	if val := getEnvInt("DEVSHOP_LEVEL_ENERGY_BONUS"); val > 0 {
		cfg.LevelMaxEnergyBonus = val
	}
	if val := getEnvFloat("DEVSHOP_HIRE_COST_GROWTH"); val > 1 {
		cfg.HireCostGrowth = val
	}

	// Support preset modes
	if mode := os.Getenv("DEVSHOP_DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}
