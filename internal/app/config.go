package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PagePath   string // HTML page to scan
	ConfigPath string // .hcl manifest file or directory, optional

	LogFormat       string
	LogLevel        string
	SettleTimeoutMS int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PagePath == "" {
		return nil, errors.New("PagePath is a required configuration field and cannot be empty")
	}
	if cfg.SettleTimeoutMS <= 0 {
		cfg.SettleTimeoutMS = 2000
	}
	return &cfg, nil
}
