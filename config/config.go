package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"raynott/api"
	"raynott/booking"
	"raynott/services"
	"raynott/services/logger"
)

// Session backends
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	APIBaseURL           string
	APITimeout           time.Duration
	AvailabilityDebounce time.Duration

	SessionBackend string
	SessionFile    string
	SessionProfile string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	CatalogCacheTTL time.Duration
	LogLevel        logger.Level

	MockAPIAddr   string
	MockJWTSecret string
}

// LoadEnv nạp biến môi trường từ tệp `.env` nếu có
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// Load đọc cấu hình từ biến môi trường, thiếu thì dùng giá trị mặc định
func Load() *Config {
	cfg := &Config{
		APIBaseURL:           strings.TrimRight(getEnvOrDefault("API_BASE_URL", api.DefaultBaseURL), "/"),
		APITimeout:           getEnvAsDurationOrDefault("API_TIMEOUT", api.DefaultTimeout),
		AvailabilityDebounce: getEnvAsDurationOrDefault("AVAILABILITY_DEBOUNCE", booking.DefaultDebounce),
		SessionBackend:       strings.ToLower(getEnvOrDefault("SESSION_BACKEND", SessionBackendFile)),
		SessionFile:          os.Getenv("SESSION_FILE"),
		SessionProfile:       getEnvOrDefault("SESSION_PROFILE", "default"),
		RedisAddr:            getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisUser:            os.Getenv("REDIS_USER"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		CatalogCacheTTL:      getEnvAsDurationOrDefault("CATALOG_CACHE_TTL", services.DefaultCatalogCacheTTL),
		LogLevel:             logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		MockAPIAddr:          getEnvOrDefault("MOCK_API_ADDR", ":8083"),
		MockJWTSecret:        getEnvOrDefault("MOCK_JWT_SECRET", "raynott-mock-secret"),
	}

	switch cfg.SessionBackend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
	default:
		log.Printf("Unknown SESSION_BACKEND %q, falling back to %s", cfg.SessionBackend, SessionBackendFile)
		cfg.SessionBackend = SessionBackendFile
	}
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Printf("Environment variable %s is not set, using default value", key)
	return defaultValue
}

// getEnvAsDurationOrDefault chấp nhận "15s", "500ms" hoặc số giây trần
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Environment variable %s is not set, using default value", key)
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if d, err := time.ParseDuration(value + "s"); err == nil && d >= 0 {
		return d
	}
	log.Printf("Invalid duration for %s: %q, using default value", key, value)
	return defaultValue
}
