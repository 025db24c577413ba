package config

import (
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/config"
)

// Executor holds executor-specific configuration.
type Executor struct {
	RedisStreamRiskJobTimeout         time.Duration `mapstructure:"redis_stream_risk_job_timeout"`
	RedisStreamRiskJobRetryInterval   time.Duration `mapstructure:"redis_stream_risk_job_retry_interval"`
	RedisStreamRiskJobMaxIdleDuration time.Duration `mapstructure:"redis_stream_risk_job_max_idle_duration"`
	RedisStreamRiskJobMaxRetry        int           `mapstructure:"redis_stream_risk_job_max_retry"`

	// AutoContinue re-enqueues the next chunk after a stream invocation that reports more chunks.
	AutoContinue bool          `mapstructure:"auto_continue"`
	ChunkLockTTL time.Duration `mapstructure:"chunk_lock_ttl"`
}

// RiskJobs holds the batch risk job tunables.
type RiskJobs struct {
	DefaultChunkSize int           `mapstructure:"default_chunk_size"`
	FetchDelay       time.Duration `mapstructure:"fetch_delay"`
	MaxErrorDetails  int           `mapstructure:"max_error_details"`
	BrapiStaleAfter  time.Duration `mapstructure:"brapi_stale_after"`
	CVMStaleAfter    time.Duration `mapstructure:"cvm_stale_after"`
	AnbimaStaleAfter time.Duration `mapstructure:"anbima_stale_after"`
	RiskFreeRate     float64       `mapstructure:"risk_free_rate"`
	BenchmarkTicker  string        `mapstructure:"benchmark_ticker"`
	// PriceCacheTTL is how long stored price observations are reused before refetching.
	PriceCacheTTL time.Duration `mapstructure:"price_cache_ttl"`
}

// Brapi holds the configuration for the Brapi quotes API.
type Brapi struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`
	Range    string        `mapstructure:"range"`
	Interval string        `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Anbima holds the configuration for the ANBIMA data feed.
type Anbima struct {
	BaseURL     string        `mapstructure:"base_url"`
	ClientID    string        `mapstructure:"client_id"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CVM holds the configuration for the CVM public offerings API.
type CVM struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OpenRouter holds the configuration for the OpenRouter API.
type OpenRouter struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the executor service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Executor   Executor        `mapstructure:"executor"`
	RiskJobs   RiskJobs        `mapstructure:"risk_jobs"`
	Brapi      Brapi           `mapstructure:"brapi"`
	Anbima     Anbima          `mapstructure:"anbima"`
	CVM        CVM             `mapstructure:"cvm"`
	OpenRouter OpenRouter      `mapstructure:"openrouter"`
	Gemini     Gemini          `mapstructure:"gemini"`
	AI         AI              `mapstructure:"ai"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

var defaults = map[string]interface{}{
	"app.name":                                         "execution-service",
	"api.port":                                         8081,
	"executor.redis_stream_risk_job_timeout":           "15m",
	"executor.redis_stream_risk_job_retry_interval":    "1m",
	"executor.redis_stream_risk_job_max_idle_duration": "20m",
	"executor.redis_stream_risk_job_max_retry":         3,
	"executor.auto_continue":                           true,
	"executor.chunk_lock_ttl":                          "20m",
	"risk_jobs.default_chunk_size":                     50,
	"risk_jobs.fetch_delay":                            "500ms",
	"risk_jobs.max_error_details":                      30,
	"risk_jobs.brapi_stale_after":                      "168h",
	"risk_jobs.cvm_stale_after":                        "168h",
	"risk_jobs.anbima_stale_after":                     "24h",
	"risk_jobs.risk_free_rate":                         0.1075,
	"risk_jobs.benchmark_ticker":                       "^BVSP",
	"risk_jobs.price_cache_ttl":                        "24h",
	"brapi.base_url":                                   "https://brapi.dev",
	"brapi.token":                                      "",
	"brapi.range":                                      "1y",
	"brapi.interval":                                   "1d",
	"brapi.timeout":                                    "30s",
	"anbima.base_url":                                  "https://api.anbima.com.br",
	"anbima.client_id":                                 "",
	"anbima.access_token":                              "",
	"anbima.timeout":                                   "60s",
	"cvm.base_url":                                     "https://dados.cvm.gov.br",
	"cvm.timeout":                                      "30s",
	"openrouter.base_url":                              "https://openrouter.ai/api/v1",
	"openrouter.api_key":                               "",
	"openrouter.model":                                 "google/gemini-2.0-flash-001",
	"gemini.api_key":                                   "",
	"gemini.model":                                     "gemini-2.0-flash",
	"gemini.max_request_per_minute":                    15,
	"gemini.max_token_per_minute":                      1000000,
	"ai.provider":                                      "gemini",
	"telegram.bot_token":                               "",
	"telegram.chat_id":                                 0,
}

// Load loads the executor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StaleAfter returns the recalculation window of a job type.
func (r RiskJobs) StaleAfter(jobType entity.JobType) time.Duration {
	switch jobType {
	case entity.JobTypeBrapiRisk:
		return r.BrapiStaleAfter
	case entity.JobTypeCVMRisk:
		return r.CVMStaleAfter
	case entity.JobTypeAnbimaRisk:
		return r.AnbimaStaleAfter
	default:
		return r.BrapiStaleAfter
	}
}
