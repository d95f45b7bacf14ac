package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Load builds the configuration from defaults, then the YAML file named by
// DAYGOAL_CONFIG (or ~/.daygoal/config.yaml when present), then DAYGOAL_*
// environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("DAYGOAL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DAYGOAL_DB_DRIVER"); v != "" {
		cfg.DB.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DAYGOAL_DB"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("DAYGOAL_DB_DSN"); v != "" {
		cfg.DB.DSN = v
	}
	if v := os.Getenv("DAYGOAL_START_POLICY"); v != "" {
		cfg.Timer.StartPolicy = strings.ToLower(v)
	}
	if v := os.Getenv("DAYGOAL_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid DAYGOAL_MAX_RETRIES %q", v)
		}
		cfg.Store.MaxRetries = n
	}
	if v := os.Getenv("DAYGOAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DAYGOAL_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid DAYGOAL_LOG_USE_CASES %q", v)
		}
		cfg.Log.UseCases = b
	}
	return nil
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("config: db.path is required for sqlite")
		}
	case DriverMySQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("config: db.dsn is required for mysql")
		}
	default:
		return fmt.Errorf("config: unknown db.driver %q", c.DB.Driver)
	}
	if !domain.ValidStartPolicies[c.Timer.StartPolicy] {
		return fmt.Errorf("config: unknown timer.start_policy %q", c.Timer.StartPolicy)
	}
	if c.Store.MaxRetries < 0 {
		return fmt.Errorf("config: store.max_retries must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("config: invalid log.level %q", c.Log.Level)
	}
	return lvl, nil
}

func (c *Config) StartPolicy() domain.StartPolicy {
	return domain.StartPolicy(c.Timer.StartPolicy)
}
