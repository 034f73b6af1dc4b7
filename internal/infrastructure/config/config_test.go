package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"GESTION_APP_NAME":          os.Getenv("GESTION_APP_NAME"),
		"GESTION_APP_ENV":           os.Getenv("GESTION_APP_ENV"),
		"GESTION_APP_PORT":          os.Getenv("GESTION_APP_PORT"),
		"GESTION_DATABASE_HOST":     os.Getenv("GESTION_DATABASE_HOST"),
		"GESTION_DATABASE_PORT":     os.Getenv("GESTION_DATABASE_PORT"),
		"GESTION_DATABASE_USER":     os.Getenv("GESTION_DATABASE_USER"),
		"GESTION_DATABASE_PASSWORD": os.Getenv("GESTION_DATABASE_PASSWORD"),
		"GESTION_DATABASE_DBNAME":   os.Getenv("GESTION_DATABASE_DBNAME"),
		"GESTION_DATABASE_SSLMODE":  os.Getenv("GESTION_DATABASE_SSLMODE"),
		"GESTION_REDIS_ENABLED":     os.Getenv("GESTION_REDIS_ENABLED"),
		"GESTION_SESSION_TTL":       os.Getenv("GESTION_SESSION_TTL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gestion-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "gestion", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "2h0m0s", cfg.Session.TTL.String())
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment variables with GESTION prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GESTION_APP_NAME", "test-app")
		os.Setenv("GESTION_APP_PORT", "9000")
		os.Setenv("GESTION_DATABASE_HOST", "testdb.local")
		os.Setenv("GESTION_DATABASE_PORT", "5433")
		os.Setenv("GESTION_REDIS_ENABLED", "true")
		os.Setenv("GESTION_SESSION_TTL", "30m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "30m0s", cfg.Session.TTL.String())
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("GESTION_APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)

		os.Setenv("GESTION_DATABASE_PASSWORD", "secret")
		os.Setenv("GESTION_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "gestion",
		Password: "p@ss w0rd",
		DBName:   "gestion",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters in the password are escaped
	assert.NotContains(t, dsn, "p@ss w0rd")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
