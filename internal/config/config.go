package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds console client configuration
type Config struct {
	APIBaseURL string
	APITimeout time.Duration
	LogLevel   string
	// LocalTZ is an optional IANA zone name for wall-clock conversion.
	// Empty means the device's local zone.
	LocalTZ string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is merged in when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", ""),
		APITimeout: getEnvAsDuration("API_TIMEOUT", 20*time.Second),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LocalTZ:    getEnv("LOCAL_TZ", ""),
	}
}

// Location resolves LocalTZ, degrading to the system zone when unset or invalid.
func (c *Config) Location() *time.Location {
	if c == nil || c.LocalTZ == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.LocalTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
