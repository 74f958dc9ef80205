package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	keys := []string{
		"MALL_APP_NAME",
		"MALL_APP_ENV",
		"MALL_APP_PORT",
		"MALL_APP_ADMIN_PASSWORD",
		"MALL_DATABASE_DRIVER",
		"MALL_DATABASE_HOST",
		"MALL_DATABASE_PORT",
		"MALL_DATABASE_USER",
		"MALL_DATABASE_PASSWORD",
		"MALL_DATABASE_DBNAME",
		"MALL_DATABASE_SSLMODE",
		"MALL_DATABASE_MAX_OPEN_CONNS",
		"MALL_DATABASE_MAX_IDLE_CONNS",
		"MALL_JWT_SECRET",
		"MALL_COOKIE_SECURE",
		"MALL_COOKIE_SAME_SITE",
		"MALL_UPLOAD_IMAGE_BASE_URL",
		"MALL_TELEMETRY_SAMPLING_RATIO",
	}
	originalEnv := make(map[string]string, len(keys))
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
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

		assert.Equal(t, "mall4r-admin", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8085", cfg.App.Port)
		assert.Equal(t, "123456", cfg.App.AdminPassword)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "mall4r", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "Authorization", cfg.Cookie.Name)
		assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, int64(5<<20), cfg.Upload.MaxFileSize)
		assert.Contains(t, cfg.Upload.AllowedExtensions, ".png")
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.False(t, cfg.Telemetry.MetricsEnabled)
		assert.Equal(t, time.Minute, cfg.Telemetry.MetricsInterval)
	})

	t.Run("loads values from environment variables with MALL prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_APP_NAME", "test-app")
		os.Setenv("MALL_APP_PORT", "9000")
		os.Setenv("MALL_DATABASE_DRIVER", "sqlite")
		os.Setenv("MALL_DATABASE_HOST", "testdb.local")
		os.Setenv("MALL_DATABASE_PORT", "5433")
		os.Setenv("MALL_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("MALL_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("MALL_UPLOAD_IMAGE_BASE_URL", "https://img.example.com/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "https://img.example.com/", cfg.Upload.ImageBaseURL)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("MALL_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("same_site none requires secure cookie", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_COOKIE_SAME_SITE", "none")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "same_site")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("production requires long jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_APP_ENV", "production")
		os.Setenv("MALL_JWT_SECRET", "short")
		os.Setenv("MALL_DATABASE_PASSWORD", "secret")
		os.Setenv("MALL_DATABASE_SSLMODE", "require")
		os.Setenv("MALL_COOKIE_SECURE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("production accepts a complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("MALL_APP_ENV", "production")
		os.Setenv("MALL_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("MALL_DATABASE_PASSWORD", "secret")
		os.Setenv("MALL_DATABASE_SSLMODE", "require")
		os.Setenv("MALL_COOKIE_SECURE", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Empty(t, cfg.App.AdminPassword, "no built-in password in production")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("escapes special characters in password", func(t *testing.T) {
		d := DatabaseConfig{
			Host:     "db",
			Port:     5432,
			User:     "mall",
			Password: "p@ss:word/1",
			DBName:   "mall4r",
			SSLMode:  "disable",
		}
		assert.Equal(t, "postgres://mall:p%40ss%3Aword%2F1@db:5432/mall4r?sslmode=disable", d.DSN())
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
