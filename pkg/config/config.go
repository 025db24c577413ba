package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Database holds database configuration.
type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

// Redis holds Redis configuration.
type Redis struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	StreamMaxLen int64  `mapstructure:"stream_max_len"`
}

// API holds API server configuration.
type API struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load loads configuration from a file into the given config struct.
// Environment variables override file values, e.g. DATABASE_PASSWORD for database.password.
// Keys only become visible to the environment when they exist in the file or in defaults.
func Load(path string, config interface{}, defaults map[string]interface{}) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range commonDefaults {
		v.SetDefault(key, value)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("Failed to read config file, falling back to defaults and environment variables")
	}

	return v.Unmarshal(config)
}

var commonDefaults = map[string]interface{}{
	"app.env":                    "development",
	"logger.level":               "info",
	"logger.encoding":            "json",
	"database.host":              "localhost",
	"database.port":              5432,
	"database.user":              "postgres",
	"database.password":          "",
	"database.name":              "invest",
	"database.ssl_mode":          "disable",
	"database.time_zone":         "America/Sao_Paulo",
	"database.max_idle_conns":    5,
	"database.max_open_conns":    20,
	"database.conn_max_lifetime": "30m",
	"redis.host":                 "localhost",
	"redis.port":                 6379,
	"redis.db":                   0,
	"redis.pool_size":            10,
	"redis.stream_max_len":       10000,
}
