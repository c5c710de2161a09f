package sim

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls a simulation run. Every field binds to a STORESIM_*
// environment variable; flags may override on top.
type Config struct {
	Seed          int64   `env:"STORESIM_SEED"           envDefault:"1"`
	Days          int     `env:"STORESIM_DAYS"           envDefault:"30"`
	StartingCash  float64 `env:"STORESIM_STARTING_CASH"  envDefault:"150"`
	StartingStock int     `env:"STORESIM_STARTING_STOCK" envDefault:"8"`

	// RestockQuantity is the units the fallback decider orders per
	// stocked-out product.
	RestockQuantity int `env:"STORESIM_RESTOCK_QTY" envDefault:"5"`

	// LogPath appends one JSONL record per day when set.
	LogPath string `env:"STORESIM_LOG_PATH"`
	// HistoryPath persists sessions and days to SQLite when set.
	HistoryPath string `env:"STORESIM_HISTORY_PATH"`

	Verbose bool `env:"STORESIM_VERBOSE"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when the environment sets
// nothing.
func DefaultConfig() Config {
	return Config{
		Seed:            1,
		Days:            30,
		StartingCash:    150,
		StartingStock:   8,
		RestockQuantity: 5,
	}
}
