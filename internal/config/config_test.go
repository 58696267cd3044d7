package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults without a file", func(t *testing.T) {
		// Given: no config file and no environment overrides
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: loading the config
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, DriverMemory, conf.Storage.Driver)
		assert.Equal(t, "localhost:6379", conf.Storage.Redis.GetRedisAddr())
		assert.Empty(t, conf.SessionID)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", DriverRedis)
		t.Setenv("REDIS_HOST", "cache")
		t.Setenv("SESSION_ID", "abc")

		conf, err := Load(filepath.Join(t.TempDir(), "config.yml"))

		require.NoError(t, err)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
		assert.Equal(t, "cache:6379", conf.Storage.Redis.GetRedisAddr())
		assert.Equal(t, "abc", conf.SessionID)
	})

	t.Run("Config file", func(t *testing.T) {
		// Given: a config file selecting redis
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nstorage:\n  driver: redis\n  redis:\n    host: redis\n    port: \"6380\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf, err := Load(path)

		// Then: the file values are used
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
		assert.Equal(t, "redis:6380", conf.Storage.Redis.GetRedisAddr())
	})

	t.Run("Unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")

		_, err := Load(filepath.Join(t.TempDir(), "config.yml"))

		require.ErrorIs(t, err, ErrUnknownDriver)
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "config.yml"))
		})
	})
}
