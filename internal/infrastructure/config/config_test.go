package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"WESHARE_APP_NAME":                os.Getenv("WESHARE_APP_NAME"),
		"WESHARE_APP_ENV":                 os.Getenv("WESHARE_APP_ENV"),
		"WESHARE_APP_PORT":                os.Getenv("WESHARE_APP_PORT"),
		"WESHARE_DATABASE_HOST":           os.Getenv("WESHARE_DATABASE_HOST"),
		"WESHARE_DATABASE_PORT":           os.Getenv("WESHARE_DATABASE_PORT"),
		"WESHARE_DATABASE_USER":           os.Getenv("WESHARE_DATABASE_USER"),
		"WESHARE_DATABASE_PASSWORD":       os.Getenv("WESHARE_DATABASE_PASSWORD"),
		"WESHARE_DATABASE_DBNAME":         os.Getenv("WESHARE_DATABASE_DBNAME"),
		"WESHARE_DATABASE_SSLMODE":        os.Getenv("WESHARE_DATABASE_SSLMODE"),
		"WESHARE_DATABASE_MAX_OPEN_CONNS": os.Getenv("WESHARE_DATABASE_MAX_OPEN_CONNS"),
		"WESHARE_DATABASE_MAX_IDLE_CONNS": os.Getenv("WESHARE_DATABASE_MAX_IDLE_CONNS"),
		"WESHARE_JWT_SECRET":              os.Getenv("WESHARE_JWT_SECRET"),
		"WESHARE_MAIL_HOST":               os.Getenv("WESHARE_MAIL_HOST"),
		"WESHARE_MAIL_PORT":               os.Getenv("WESHARE_MAIL_PORT"),
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

		assert.Equal(t, "weshare-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "weshare", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 587, cfg.Mail.Port)
		assert.Equal(t, time.Hour, cfg.Sharing.ExpirySweepInterval)
		assert.Equal(t, 100, cfg.Sharing.ExpirySweepBatch)
		assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiration)
	})

	t.Run("loads values from environment variables with WESHARE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("WESHARE_APP_NAME", "test-app")
		os.Setenv("WESHARE_APP_PORT", "9000")
		os.Setenv("WESHARE_DATABASE_HOST", "testdb.local")
		os.Setenv("WESHARE_DATABASE_PORT", "5433")
		os.Setenv("WESHARE_DATABASE_USER", "testuser")
		os.Setenv("WESHARE_DATABASE_PASSWORD", "testpass")
		os.Setenv("WESHARE_DATABASE_DBNAME", "testdb")
		os.Setenv("WESHARE_DATABASE_SSLMODE", "require")
		os.Setenv("WESHARE_MAIL_HOST", "smtp.test.local")
		os.Setenv("WESHARE_MAIL_PORT", "2525")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "smtp.test.local", cfg.Mail.Host)
		assert.Equal(t, 2525, cfg.Mail.Port)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("WESHARE_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("WESHARE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("WESHARE_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("WESHARE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "weshare",
		Password: "p@ss/word",
		DBName:   "weshare",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", cfg.Addr())
}
