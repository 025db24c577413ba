package config

import (
	"time"

	"github.com/brunotrento11/Teste-sub000/pkg/config"
)

// Scheduler holds scheduler-specific configuration.
type Scheduler struct {
	PollingInterval time.Duration `mapstructure:"polling_interval"`
	// DefaultTimeout applies to jobs stored without a timeout, in seconds.
	DefaultTimeout int `mapstructure:"default_timeout"`
}

// Config holds the full configuration for the scheduler service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
}

var defaults = map[string]interface{}{
	"app.name":                   "scheduling-service",
	"api.port":                   8080,
	"scheduler.polling_interval": "30s",
	"scheduler.default_timeout":  900,
}

// Load loads the scheduler configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
