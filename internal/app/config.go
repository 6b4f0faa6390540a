package app

import (
	"time"

	"github.com/dmitrymomot/accessgate/core/server"
	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/integration/database/redis"
	"github.com/dmitrymomot/accessgate/internal/events"
	"github.com/dmitrymomot/accessgate/internal/telemetry"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	DB        pg.Config
	Redis     redis.Config
	NATS      events.NATSConfig
	Server    server.Config
	Pipeline  PipelineConfig
	Cache     CacheConfig
	Telemetry telemetry.Config

	AppName  string `env:"APP_NAME" envDefault:"accessgate"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// PipelineConfig holds the slow-request thresholds of the two pipelines.
type PipelineConfig struct {
	CommandSlowThreshold time.Duration `env:"PIPELINE_COMMAND_SLOW_THRESHOLD" envDefault:"5s"`
	QuerySlowThreshold   time.Duration `env:"PIPELINE_QUERY_SLOW_THRESHOLD" envDefault:"3s"`
}

// DefaultPipelineConfig returns the thresholds used when none are configured.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		CommandSlowThreshold: 5 * time.Second,
		QuerySlowThreshold:   3 * time.Second,
	}
}

// CacheConfig controls the activity cache. Redis is used as the second level only when
// Enabled is set.
type CacheConfig struct {
	Enabled     bool          `env:"CACHE_ENABLED" envDefault:"false"`
	Prefix      string        `env:"CACHE_PREFIX" envDefault:"accessgate:"`
	TTL         time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	LocalTTL    time.Duration `env:"CACHE_LOCAL_TTL" envDefault:"30s"`
	LocalMaxMem int64         `env:"CACHE_LOCAL_MAX_BYTES" envDefault:"16777216"` // 16MB
}
