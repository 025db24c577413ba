package config

import (
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/search"
	"github.com/brunotrento11/Teste-sub000/pkg/config"
)

// Server points the CLI at the execution service.
type Server struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// State selects where the debounce history and search cache are persisted.
type State struct {
	// Backend is "file" or "redis".
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Config holds the full configuration for the search CLI.
type Config struct {
	App      config.App         `mapstructure:"app"`
	Logger   config.Logger      `mapstructure:"logger"`
	Redis    config.Redis       `mapstructure:"redis"`
	Server   Server             `mapstructure:"server"`
	State    State              `mapstructure:"state"`
	Debounce search.DelayConfig `mapstructure:"debounce"`
}

var defaults = map[string]interface{}{
	"app.name":               "search-cli",
	"logger.level":           "warn",
	"logger.encoding":        "console",
	"server.base_url":        "http://localhost:8081",
	"server.timeout":         "10s",
	"state.backend":          "file",
	"state.path":             ".search-state.gob",
	"state.key_prefix":       "search-cli:",
	"debounce.min_delay":     search.DefaultDelayConfig.MinDelay.String(),
	"debounce.max_delay":     search.DefaultDelayConfig.MaxDelay.String(),
	"debounce.initial_delay": search.DefaultDelayConfig.InitialDelay.String(),
}

// Load loads the search CLI configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
