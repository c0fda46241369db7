package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/pkg/config"
)

type serverConfig struct {
	Name    string        `env:"CFG_TEST_NAME" envDefault:"library"`
	Port    int           `env:"CFG_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	config.Reset()
	t.Setenv("CFG_TEST_PORT", "9090")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "library", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CFG_TEST_PORT", "1")
		var again serverConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, 9090, again.Port)
	})

	t.Run("reset drops cache", func(t *testing.T) {
		t.Setenv("CFG_TEST_PORT", "1")
		config.Reset()
		var fresh serverConfig
		require.NoError(t, config.Load(&fresh))
		assert.Equal(t, 1, fresh.Port)
	})
}

func TestLoadErrors(t *testing.T) {
	config.Reset()

	var nilCfg *serverConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
}

func TestLoadEnv(t *testing.T) {
	config.Reset()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_SECRET=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CFG_TEST_SECRET") })

	require.NoError(t, config.LoadEnv(path))

	var cfg requiredConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Secret)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
