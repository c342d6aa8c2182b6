package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	GatewayBaseUrl   string
	GatewayAuthToken string
	GatewayRateRPS   float64
	GatewayBurst     int

	RedisAddr    string
	DisableRedis bool

	HTTPAddr     string
	FetchTimeout time.Duration
	DefaultCity  string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fetchTimeout, err := time.ParseDuration(envOrDefault("fetch_timeout", "15s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid fetch_timeout")
	}

	cfg := &Config{
		GatewayBaseUrl:   os.Getenv("gateway_baseurl"),
		GatewayAuthToken: os.Getenv("gateway_authtoken"),
		GatewayRateRPS:   envFloat("gateway_rate_rps", 10),
		GatewayBurst:     envInt("gateway_rate_burst", 20),
		RedisAddr:        envOrDefault("redis_address", "localhost:6379"),
		HTTPAddr:         envOrDefault("http_address", ":8080"),
		FetchTimeout:     fetchTimeout,
		DefaultCity:      envOrDefault("default_city", "London"),
	}

	if disableRedis, err := strconv.ParseBool(os.Getenv("disable_redis")); err == nil {
		cfg.DisableRedis = disableRedis
	}

	if cfg.GatewayBaseUrl == "" {
		return nil, errors.New("gateway_baseurl is required")
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
