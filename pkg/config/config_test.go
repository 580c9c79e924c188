package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8090" {
		t.Errorf("Expected Port to be 8090, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.CacheDir != "cache" {
		t.Errorf("Expected CacheDir to be cache, got %s", cfg.CacheDir)
	}

	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Expected Fetch.Timeout to be 30s, got %v", cfg.Fetch.Timeout)
	}

	if cfg.Fetch.RequestsPerSec != 0.5 {
		t.Errorf("Expected Fetch.RequestsPerSec to be 0.5, got %v", cfg.Fetch.RequestsPerSec)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("CACHE_DIR", "/tmp/scanner-cache")
	os.Setenv("FETCH_TIMEOUT", "10s")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("CACHE_DIR")
		os.Unsetenv("FETCH_TIMEOUT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.CacheDir != "/tmp/scanner-cache" {
		t.Errorf("Expected CacheDir to be /tmp/scanner-cache, got %s", cfg.CacheDir)
	}

	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Expected Fetch.Timeout to be 10s, got %v", cfg.Fetch.Timeout)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "sandbox")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for invalid ENV, got nil")
	}
}

func TestValidateBadRequestsPerSec(t *testing.T) {
	os.Setenv("FETCH_REQUESTS_PER_SEC", "-1")
	defer os.Unsetenv("FETCH_REQUESTS_PER_SEC")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for negative FETCH_REQUESTS_PER_SEC, got nil")
	}
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	os.Setenv("FETCH_TIMEOUT", "not-a-duration")
	defer os.Unsetenv("FETCH_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Expected fallback timeout 30s, got %v", cfg.Fetch.Timeout)
	}
}
