package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/config"
)

type pipelineConfig struct {
	CommandSlow time.Duration `env:"TEST_CFG_COMMAND_SLOW" envDefault:"5s"`
	QuerySlow   time.Duration `env:"TEST_CFG_QUERY_SLOW" envDefault:"3s"`
}

type requiredConfig struct {
	URL string `env:"TEST_CFG_REQUIRED_URL,required"`
}

type cachedConfig struct {
	Name string `env:"TEST_CFG_CACHED_NAME"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.Reset()

		var cfg pipelineConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 5*time.Second, cfg.CommandSlow)
		assert.Equal(t, 3*time.Second, cfg.QuerySlow)
	})

	t.Run("reads environment", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_COMMAND_SLOW", "250ms")

		var cfg pipelineConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 250*time.Millisecond, cfg.CommandSlow)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_CACHED_NAME", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CFG_CACHED_NAME", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Name)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
