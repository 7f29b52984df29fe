package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfold/dispatch/core/config"
)

// Distinct struct types per test: the loader caches per type.

func TestLoad_FromEnvironment(t *testing.T) {
	type serverConfig struct {
		Addr    string        `env:"TEST_SERVER_ADDR" envDefault:":8080"`
		Timeout time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"5s"`
	}

	t.Setenv("TEST_SERVER_ADDR", ":9090")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"initial"`
	}

	t.Setenv("TEST_CACHED_VALUE", "first")

	var cfg cachedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Value)

	// A later environment change is not observed: the type is cached.
	t.Setenv("TEST_CACHED_VALUE", "second")
	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_STRICT_SECRET,required"`
	}

	var cfg strictConfig
	assert.Error(t, config.Load(&cfg))
}

func TestLoad_InvalidTarget(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, config.Load(nil), config.ErrNilTarget)

	var notStruct int
	assert.ErrorIs(t, config.Load(&notStruct), config.ErrNilTarget)

	type anyConfig struct{}
	var nilPtr *anyConfig
	assert.ErrorIs(t, config.Load(nilPtr), config.ErrNilTarget)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { config.MustLoad(nil) })
}
