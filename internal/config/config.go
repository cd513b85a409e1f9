// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string
	LogLevel      string
	LogFormat     string

	// StreamKeepalive is the interval between comment frames on idle event
	// streams, so dead viewer connections are detected.
	StreamKeepalive time.Duration

	// ProductCacheTTL bounds staleness of the in-memory product cache.
	ProductCacheTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	keepalive, err := getSeconds("STREAM_KEEPALIVE_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	cfg.StreamKeepalive = keepalive

	cacheTTL, err := getSeconds("PRODUCT_CACHE_TTL_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.ProductCacheTTL = cacheTTL

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getSeconds(key string, defaultValue int) (time.Duration, error) {
	raw := getEnv(key, strconv.Itoa(defaultValue))
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return time.Duration(seconds) * time.Second, nil
}
