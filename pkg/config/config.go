package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	AppBaseURL        string
	JWTSecret         string
	UnsubscribeExpiry time.Duration
	SendGridAPIKey    string
	DigestFromName    string
	DigestFromEmail   string
	DigestCronSpec    string
	DigestRunSecret   string
	OverviewCacheTTL  time.Duration
	RateLimitPerSec   float64
	RateLimitBurst    int
	LogLevel          string
	Environment       string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		DigestFromName:    getEnv("DIGEST_FROM_NAME", "CafeSight"),
		DigestFromEmail:   getEnv("DIGEST_FROM_EMAIL", "digest@cafesight.app"),
		DigestCronSpec:    getEnv("DIGEST_CRON_SPEC", "0 9 * * 1"),
		DigestRunSecret:   os.Getenv("DIGEST_RUN_SECRET"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		UnsubscribeExpiry: 30 * 24 * time.Hour,
		OverviewCacheTTL:  time.Minute,
		RateLimitPerSec:   5,
		RateLimitBurst:    10,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	if exp := os.Getenv("UNSUBSCRIBE_TOKEN_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			cfg.UnsubscribeExpiry = parsed
		}
	}
	if ttl := os.Getenv("OVERVIEW_CACHE_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			cfg.OverviewCacheTTL = parsed
		}
	}
	if rps := os.Getenv("RATE_LIMIT_PER_SEC"); rps != "" {
		if parsed, err := strconv.ParseFloat(rps, 64); err == nil && parsed > 0 {
			cfg.RateLimitPerSec = parsed
		}
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if parsed, err := strconv.Atoi(burst); err == nil && parsed > 0 {
			cfg.RateLimitBurst = parsed
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
