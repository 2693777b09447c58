// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string
	LogFmt   string // "text" or "json"

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Limit enforcement
	FailMode            string // "open" or "closed": what to do when evaluation itself errors
	UnknownCurrencyMode string // "parity" or "reject"
	ForeignSuffixes     string // comma-separated recipient suffixes treated as international

	// Security
	AdminSecret  string // Admin API secret
	RateLimitRPS int

	// Observability
	OTLPEndpoint string // OTLP gRPC endpoint, empty disables tracing
}

// Defaults
const (
	DefaultPort                = "8080"
	DefaultEnv                 = "development"
	DefaultLogLevel            = "info"
	DefaultLogFmt              = "text"
	DefaultFailMode            = "open"
	DefaultUnknownCurrencyMode = "parity"
	DefaultRateLimit           = 100
)

// Load reads configuration from environment variables
// It loads .env file if present (for local development)
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", DefaultPort),
		Env:                 getEnv("ENV", DefaultEnv),
		LogLevel:            getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFmt:              getEnv("LOG_FORMAT", DefaultLogFmt),
		DatabaseURL:         os.Getenv("DATABASE_URL"), // Optional, uses in-memory if not set
		FailMode:            getEnv("FAIL_MODE", DefaultFailMode),
		UnknownCurrencyMode: getEnv("UNKNOWN_CURRENCY_MODE", DefaultUnknownCurrencyMode),
		ForeignSuffixes:     os.Getenv("FOREIGN_SUFFIXES"),
		AdminSecret:         os.Getenv("ADMIN_SECRET"),
		RateLimitRPS:        int(getEnvInt64("RATE_LIMIT_RPS", int64(DefaultRateLimit))),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are coherent
func (c *Config) Validate() error {
	if c.FailMode != "open" && c.FailMode != "closed" {
		return fmt.Errorf("FAIL_MODE must be \"open\" or \"closed\", got %q", c.FailMode)
	}

	if c.UnknownCurrencyMode != "parity" && c.UnknownCurrencyMode != "reject" {
		return fmt.Errorf("UNKNOWN_CURRENCY_MODE must be \"parity\" or \"reject\", got %q", c.UnknownCurrencyMode)
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}

	if c.IsProduction() && c.AdminSecret == "" {
		return fmt.Errorf("ADMIN_SECRET is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
