package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RateLimitConfig 限流配置
// 固定窗口计数；Backend = "memory"（进程内）或 "redis"（跨实例共享）
type RateLimitConfig struct {
	Backend       string
	IPLimit       int
	TokenLimit    int
	Window        time.Duration
	SweepInterval time.Duration
}

// Config fleetlink-report（公开提交 HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	RateLimit RateLimitConfig
	// TokenPepper 服务端秘密，参与链接 token 摘要计算。
	// 为空时公开提交接口全部返回 500（配置错误，不能静默放行）。
	TokenPepper string
	// AlertWebhookURL HIGH 风险报告的告警回调地址，为空则不发送
	AlertWebhookURL string
	Log             struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "fleetlink")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "20"), 20)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.RateLimit.Backend = getEnv("RATE_LIMIT_BACKEND", "memory")
	cfg.RateLimit.IPLimit = parseInt(getEnv("RATE_LIMIT_IP_PER_MINUTE", "30"), 30)
	cfg.RateLimit.TokenLimit = parseInt(getEnv("RATE_LIMIT_TOKEN_PER_MINUTE", "5"), 5)
	cfg.RateLimit.Window = time.Minute
	cfg.RateLimit.SweepInterval = time.Duration(parseInt(getEnv("RATE_LIMIT_SWEEP_SECONDS", "60"), 60)) * time.Second

	cfg.TokenPepper = getEnv("TOKEN_PEPPER", "")
	cfg.AlertWebhookURL = getEnv("ALERT_WEBHOOK_URL", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
