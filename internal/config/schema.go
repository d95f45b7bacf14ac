package config

// Config is the full daygoal configuration.
type Config struct {
	DB    DBConfig    `yaml:"db" mapstructure:"db"`
	Timer TimerConfig `yaml:"timer" mapstructure:"timer"`
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

type DBConfig struct {
	// Driver is "sqlite" or "mysql".
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

type TimerConfig struct {
	// StartPolicy is "reject" or "allow".
	StartPolicy string `yaml:"start_policy" mapstructure:"start_policy"`
}

type StoreConfig struct {
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

type LogConfig struct {
	Level    string `yaml:"level" mapstructure:"level"`
	UseCases bool   `yaml:"use_cases" mapstructure:"use_cases"`
}
