package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg := Load()
	assert.NotNil(t, cfg)

	// 验证默认值
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "fleetlink", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Equal(t, 30, cfg.RateLimit.IPLimit)
	assert.Equal(t, 5, cfg.RateLimit.TokenLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)

	assert.Equal(t, "", cfg.TokenPepper)
	assert.Equal(t, "", cfg.AlertWebhookURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_NAME", "test-db")
	os.Setenv("RATE_LIMIT_BACKEND", "redis")
	os.Setenv("RATE_LIMIT_IP_PER_MINUTE", "10")
	os.Setenv("RATE_LIMIT_TOKEN_PER_MINUTE", "2")
	os.Setenv("TOKEN_PEPPER", "test-pepper")
	os.Setenv("ALERT_WEBHOOK_URL", "http://alerts.local/hook")
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Clearenv()

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, "test-db", cfg.Database.Database)
	assert.Equal(t, "redis", cfg.RateLimit.Backend)
	assert.Equal(t, 10, cfg.RateLimit.IPLimit)
	assert.Equal(t, 2, cfg.RateLimit.TokenLimit)
	assert.Equal(t, "test-pepper", cfg.TokenPepper)
	assert.Equal(t, "http://alerts.local/hook", cfg.AlertWebhookURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PORT", "not-a-number")
	defer os.Clearenv()

	cfg := Load()
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "fleet",
		Password: "secret",
		Database: "fleetlink",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.local port=5433 user=fleet password=secret dbname=fleetlink sslmode=require",
		cfg.DSN())
}
