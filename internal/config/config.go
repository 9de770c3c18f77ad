package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string

	// Bearer tokens are verified with this HS256 secret. When empty the API
	// falls back to the legacy uid/email query-parameter identity only.
	AuthJWTSecret string
	AuthIssuer    string
	AuthAudience  string

	CORSAllowedOrigins []string

	CatalogCacheTTL   time.Duration
	AnalyticsCacheTTL time.Duration
	IdempotencyTTL    time.Duration

	// Order-level discount ceiling in percent; the order form enforces the
	// same bound client-side.
	MaxOrderDiscountPct decimal.Decimal

	// ulule/limiter formatted rate, e.g. "120-M".
	WriteRateLimit string

	NotifyEmailFrom  string
	AdminNotifyEmail string

	WorkerConcurrency int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:              valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:         k.String("DATABASE_URL"),
		RedisURL:            k.String("REDIS_URL"),
		AuthJWTSecret:       k.String("AUTH_JWT_SECRET"),
		AuthIssuer:          k.String("AUTH_ISSUER"),
		AuthAudience:        k.String("AUTH_AUDIENCE"),
		CORSAllowedOrigins:  splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		CatalogCacheTTL:     parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		AnalyticsCacheTTL:   parseDuration(k.String("ANALYTICS_CACHE_TTL"), "1m"),
		IdempotencyTTL:      parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		MaxOrderDiscountPct: parseDecimal(k.String("MAX_ORDER_DISCOUNT_PCT"), "30"),
		WriteRateLimit:      valueOrDefault(k.String("WRITE_RATE_LIMIT"), "120-M"),
		NotifyEmailFrom:     valueOrDefault(k.String("NOTIFY_EMAIL_FROM"), "no-reply@nexgrow.example"),
		AdminNotifyEmail:    k.String("ADMIN_NOTIFY_EMAIL"),
		WorkerConcurrency:   parseInt(k.String("WORKER_CONCURRENCY"), 4),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseDecimal(value, fallback string) decimal.Decimal {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := decimal.NewFromString(base)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
