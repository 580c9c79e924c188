package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. Environment variables are
// read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Storage
	CacheDir     string // directory holding feed artifacts and snapshots
	StrategyFile string // optional strategy YAML; empty uses built-in defaults

	// Fetching
	Fetch FetchConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// FetchConfig holds settings for the short-interest fetcher.
type FetchConfig struct {
	UserAgent      string
	Timeout        time.Duration
	RequestsPerSec float64
}

// Load reads configuration from environment variables. This is the
// only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		CacheDir:     getEnv("CACHE_DIR", "cache"),
		StrategyFile: getEnv("STRATEGY_FILE", ""),

		Fetch: FetchConfig{
			UserAgent:      getEnv("FETCH_USER_AGENT", "Mozilla/5.0"),
			Timeout:        getEnvAsDuration("FETCH_TIMEOUT", "30s"),
			RequestsPerSec: getEnvAsFloat("FETCH_REQUESTS_PER_SEC", 0.5),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.Env {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid ENV %q: must be development, staging or production", c.Env)
	}

	if c.CacheDir == "" {
		return fmt.Errorf("CACHE_DIR must not be empty")
	}

	if c.Fetch.RequestsPerSec <= 0 {
		return fmt.Errorf("FETCH_REQUESTS_PER_SEC must be > 0")
	}

	return nil
}

// loadEnvFile tries a few common locations for a .env file. A missing
// file is fine; real environment variables always win.
func loadEnvFile() {
	candidates := []string{
		".env",
		filepath.Join("..", ".env"),
		filepath.Join("..", "..", ".env"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	value := getEnv(key, fallback)
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	parsed, _ := time.ParseDuration(fallback)
	return parsed
}
