package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Data    DataConfig   `yaml:"data" json:"data"`
	Balance Balance      `yaml:"balance" json:"balance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	def := Default()
	if c.Balance.StartingMoney == 0 {
		c.Balance.StartingMoney = def.StartingMoney
	}
	if c.Balance.StartingEnergy == 0 {
		c.Balance.StartingEnergy = def.StartingEnergy
	}
	if c.Balance.IncomePerDev == 0 {
		c.Balance.IncomePerDev = def.IncomePerDev
	}
	if c.Balance.XPPerLevel == 0 {
		c.Balance.XPPerLevel = def.XPPerLevel
	}
	if c.Balance.LevelMaxEnergyBonus == 0 {
		c.Balance.LevelMaxEnergyBonus = def.LevelMaxEnergyBonus
	}
	if c.Balance.HireCostGrowth == 0 {
		c.Balance.HireCostGrowth = def.HireCostGrowth
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// Defaults returns a fully defaulted config without reading any file.
func Defaults() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}
