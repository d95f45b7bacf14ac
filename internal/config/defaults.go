package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns a Config with sensible defaults: a SQLite file under
// ~/.daygoal, the reject start policy and warn-level logging.
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{
			Driver: DriverSQLite,
			Path:   defaultDBPath(),
		},
		Timer: TimerConfig{StartPolicy: "reject"},
		Store: StoreConfig{MaxRetries: 3},
		Log:   LogConfig{Level: "warn"},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daygoal.db"
	}
	return filepath.Join(home, ".daygoal", "daygoal.db")
}

// DefaultConfigPath is where Load looks when DAYGOAL_CONFIG is unset.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".daygoal", "config.yaml")
}
