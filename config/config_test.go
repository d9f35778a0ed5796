package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"raynott/api"
	"raynott/services/logger"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"API_BASE_URL", "API_TIMEOUT", "AVAILABILITY_DEBOUNCE", "SESSION_BACKEND", "LOG_LEVEL", "CATALOG_CACHE_TTL"} {
			t.Setenv(k, "")
		}
		cfg := Load()
		if cfg.APIBaseURL != api.DefaultBaseURL {
			t.Fatalf("expected default base url, got %q", cfg.APIBaseURL)
		}
		if cfg.APITimeout != 15*time.Second {
			t.Fatalf("expected 15s timeout, got %v", cfg.APITimeout)
		}
		if cfg.AvailabilityDebounce != 500*time.Millisecond {
			t.Fatalf("expected 500ms debounce, got %v", cfg.AvailabilityDebounce)
		}
		if cfg.CatalogCacheTTL != time.Hour {
			t.Fatalf("expected 60m cache ttl, got %v", cfg.CatalogCacheTTL)
		}
		if cfg.SessionBackend != SessionBackendFile || cfg.LogLevel != logger.InfoLevel {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://localhost:8083/api/")
		t.Setenv("API_TIMEOUT", "3")
		t.Setenv("AVAILABILITY_DEBOUNCE", "250ms")
		t.Setenv("SESSION_BACKEND", "Redis")
		t.Setenv("LOG_LEVEL", "debug")
		cfg := Load()
		if cfg.APIBaseURL != "http://localhost:8083/api" {
			t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
		}
		if cfg.APITimeout != 3*time.Second || cfg.AvailabilityDebounce != 250*time.Millisecond {
			t.Fatalf("unexpected durations: %v %v", cfg.APITimeout, cfg.AvailabilityDebounce)
		}
		if cfg.SessionBackend != SessionBackendRedis || cfg.LogLevel != logger.DebugLevel {
			t.Fatalf("unexpected overrides: %+v", cfg)
		}
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("API_TIMEOUT", "soon")
		t.Setenv("SESSION_BACKEND", "postgres")
		cfg := Load()
		if cfg.APITimeout != api.DefaultTimeout || cfg.SessionBackend != SessionBackendFile {
			t.Fatalf("expected fallbacks, got %v %q", cfg.APITimeout, cfg.SessionBackend)
		}
	})
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MOCK_JWT_SECRET=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOCK_JWT_SECRET", "")
	os.Unsetenv("MOCK_JWT_SECRET")

	LoadEnv(path)
	if got := Load().MockJWTSecret; got != "from-dotenv" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
