package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PLANTSTORE_APP_NAME":          os.Getenv("PLANTSTORE_APP_NAME"),
		"PLANTSTORE_APP_ENV":           os.Getenv("PLANTSTORE_APP_ENV"),
		"PLANTSTORE_APP_PORT":          os.Getenv("PLANTSTORE_APP_PORT"),
		"PLANTSTORE_DATABASE_HOST":     os.Getenv("PLANTSTORE_DATABASE_HOST"),
		"PLANTSTORE_DATABASE_PORT":     os.Getenv("PLANTSTORE_DATABASE_PORT"),
		"PLANTSTORE_DATABASE_PASSWORD": os.Getenv("PLANTSTORE_DATABASE_PASSWORD"),
		"PLANTSTORE_DATABASE_SSLMODE":  os.Getenv("PLANTSTORE_DATABASE_SSLMODE"),
		"PLANTSTORE_JWT_SECRET":        os.Getenv("PLANTSTORE_JWT_SECRET"),
		"PLANTSTORE_STORAGE_BUCKET":    os.Getenv("PLANTSTORE_STORAGE_BUCKET"),
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

		assert.Equal(t, "plant-store", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "plantstore", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "plant-store-media", cfg.Storage.Bucket)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("PLANTSTORE_APP_PORT", "9000")
		os.Setenv("PLANTSTORE_DATABASE_HOST", "db.internal")
		os.Setenv("PLANTSTORE_STORAGE_BUCKET", "plants-test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "plants-test", cfg.Storage.Bucket)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("PLANTSTORE_APP_ENV", "production")
		os.Setenv("PLANTSTORE_DATABASE_PASSWORD", "secret")
		os.Setenv("PLANTSTORE_DATABASE_SSLMODE", "require")
		os.Setenv("PLANTSTORE_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "plantstore",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=plantstore sslmode=disable",
		cfg.DSN())
}
