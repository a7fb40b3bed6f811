package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: every other value has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "O", conf.Game.AIPlayer)
		assert.Equal(t, "minimax_strong", conf.Game.DefaultStrategy)
		assert.Equal(t, time.Hour, conf.Game.SessionTTL)
		assert.InDelta(t, 0.3, conf.Game.SoftMistakeRate, 1e-9)
		assert.Empty(t, conf.Postgres.DSN)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Full file", func(t *testing.T) {
		path := writeConfig(t, `
storage: redis
redis:
  host: cache
  port: "6380"
game:
  ai-player: X
  session-ttl: 15m
  random-seed: 42
cors:
  allowed-origins:
    - https://example.com
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "X", conf.Game.AIPlayer)
		assert.Equal(t, 15*time.Minute, conf.Game.SessionTTL)
		assert.Equal(t, int64(42), conf.Game.RandomSeed)
		assert.Equal(t, []string{"https://example.com"}, conf.CORS.AllowedOrigins)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"9090\"\n")
		t.Setenv("HTTP_PORT", "8000")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "8000", conf.HTTPPort)
	})

	t.Run("Invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "storage: disk\n"))
		require.ErrorIs(t, err, ErrInvalidStorage)

		_, err = Load(writeConfig(t, "game:\n  ai-player: Z\n"))
		require.ErrorIs(t, err, ErrInvalidAIPlayer)

		_, err = Load(writeConfig(t, "game:\n  soft-mistake-rate: 1.5\n"))
		require.ErrorIs(t, err, ErrInvalidRate)

		_, err = Load(writeConfig(t, "log-level: verbose\n"))
		require.ErrorIs(t, err, ErrInvalidLogLevel)
	})

	t.Run("Log levels map to slog", func(t *testing.T) {
		for name, want := range map[string]slog.Level{
			"debug": slog.LevelDebug,
			"info":  slog.LevelInfo,
			"warn":  slog.LevelWarn,
			"error": slog.LevelError,
		} {
			conf, err := Load(writeConfig(t, "log-level: "+name+"\n"))
			require.NoError(t, err)
			assert.Equal(t, want, conf.SlogLevel())
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)

		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}
