package app

import "fmt"

// Config holds the CLI-facing knobs for an App instance. Zero values mean
// "not set"; environment settings fill the gaps.
type Config struct {
	// EnvFile is an optional .env path loaded before reading the
	// environment.
	EnvFile string

	// LocalesPath is an optional directory of .hcl locale rule files
	// applied on top of the compiled-in defaults.
	LocalesPath string

	// Host and Port override the HOST/PORT environment settings when set.
	Host string
	Port int

	// LogFormat and LogLevel override LOG_FORMAT/LOG_LEVEL when set.
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	return &cfg, nil
}
