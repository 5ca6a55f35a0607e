package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/pkg/config"
)

type relaySettings struct {
	Endpoint string        `env:"CFG_TEST_RELAY_ENDPOINT" envDefault:"https://relay.example.com/send"`
	Timeout  time.Duration `env:"CFG_TEST_RELAY_TIMEOUT" envDefault:"10s"`
	Overflow bool          `env:"CFG_TEST_OVERFLOW" envDefault:"false"`
}

type requiredSettings struct {
	Token string `env:"CFG_TEST_REQUIRED_TOKEN,required"`
}

type envFileSettings struct {
	Recipient string `env:"CFG_TEST_RECIPIENT"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("CFG_TEST_RELAY_ENDPOINT")
		os.Unsetenv("CFG_TEST_RELAY_TIMEOUT")

		var cfg relaySettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://relay.example.com/send", cfg.Endpoint)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.False(t, cfg.Overflow)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFG_TEST_RELAY_ENDPOINT", "https://mail.church.test/relay")
		t.Setenv("CFG_TEST_RELAY_TIMEOUT", "3s")
		t.Setenv("CFG_TEST_OVERFLOW", "true")

		var cfg relaySettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://mail.church.test/relay", cfg.Endpoint)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.True(t, cfg.Overflow)
	})

	t.Run("cached after first parse", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFG_TEST_RELAY_ENDPOINT", "https://first.test")

		var first relaySettings
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_TEST_RELAY_ENDPOINT", "https://second.test")
		var second relaySettings
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "https://first.test", second.Endpoint)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("CFG_TEST_REQUIRED_TOKEN")

		var cfg requiredSettings
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *relaySettings
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()
	os.Unsetenv("CFG_TEST_REQUIRED_TOKEN")

	assert.Panics(t, func() {
		var cfg requiredSettings
		config.MustLoad(&cfg)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	t.Run("reads variables from file", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("CFG_TEST_RECIPIENT")
		t.Cleanup(func() { os.Unsetenv("CFG_TEST_RECIPIENT") })

		path := filepath.Join(t.TempDir(), "site.env")
		require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_RECIPIENT=office@church.test\n"), 0o600))

		require.NoError(t, config.LoadEnvFiles(path))

		var cfg envFileSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "office@church.test", cfg.Recipient)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env"))
		assert.ErrorIs(t, err, config.ErrEnvFile)
	})

	t.Run("no files is a no-op", func(t *testing.T) {
		assert.NoError(t, config.LoadEnvFiles())
	})
}
