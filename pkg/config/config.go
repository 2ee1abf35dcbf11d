// Package config loads the table settings from an optional YAML file
// plus HOLDEM_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Config holds everything the bootstrap needs to build a table.
type Config struct {
	NumPlayers int   `mapstructure:"num_players"`
	SmallBlind int64 `mapstructure:"small_blind"`
	BigBlind   int64 `mapstructure:"big_blind"`
	BuyIn      int64 `mapstructure:"buy_in"`

	// DBPath is the SQLite file for stats and the leaderboard. Empty
	// keeps everything in memory.
	DBPath string `mapstructure:"db_path"`

	// AIDelayMs paces automated opponents, in milliseconds.
	AIDelayMs int `mapstructure:"ai_delay_ms"`

	// Seed fixes the deal order for reproducible sessions; 0 is random.
	Seed int64 `mapstructure:"seed"`

	DebugLevel string `mapstructure:"debug_level"`
	LogFile    string `mapstructure:"log_file"`
}

// Load reads the config file at path (optional when empty or missing)
// and applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("num_players", 4)
	v.SetDefault("small_blind", 10)
	v.SetDefault("big_blind", 20)
	v.SetDefault("buy_in", 200)
	v.SetDefault("db_path", "holdem.db")
	v.SetDefault("ai_delay_ms", 900)
	v.SetDefault("seed", 0)
	v.SetDefault("debug_level", "info")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("holdem")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A missing file just means defaults.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.NumPlayers < 2 || c.NumPlayers > 9 {
		return fmt.Errorf("num_players must be between 2 and 9, got %d", c.NumPlayers)
	}
	if c.SmallBlind <= 0 || c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("blinds must satisfy 0 < small (%d) < big (%d)",
			c.SmallBlind, c.BigBlind)
	}
	if c.BuyIn < 2*c.BigBlind {
		return fmt.Errorf("buy_in %d too small for big blind %d", c.BuyIn, c.BigBlind)
	}
	if c.AIDelayMs < 0 {
		return fmt.Errorf("ai_delay_ms must not be negative, got %d", c.AIDelayMs)
	}
	return nil
}
