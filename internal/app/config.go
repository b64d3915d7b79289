package app

import "errors"

// Config holds the process-level settings an App instance needs to run.
type Config struct {
	// ConfigPath is the path to the workspace configuration file. The
	// directory containing it is the workspace root.
	ConfigPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
