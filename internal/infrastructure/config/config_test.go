package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "gasdepot-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.NotEmpty(t, cfg.HTTP.CORSAllowMethods)
}

func TestValidate(t *testing.T) {
	newValid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, newValid().validate())
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := newValid()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		cfg := newValid()
		cfg.Cache.Backend = "memcached"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := newValid()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		assert.Error(t, cfg.validate())

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production rejects sqlite and wildcard cors", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"

		cfg.Database.Driver = "sqlite"
		assert.Error(t, cfg.validate())

		cfg.Database.Driver = "postgres"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "gasdepot",
		Password: "p@ss/word",
		DBName:   "gasdepot",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in credentials must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_RedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
