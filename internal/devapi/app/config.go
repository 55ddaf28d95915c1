package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SigningKey    string        // Optional: HS256 secret, at least 32 bytes (default: random per process)
	AccessTTL     time.Duration // Optional: access token lifetime (default: 5m)
	RefreshTTL    time.Duration // Optional: refresh token lifetime (default: 24h)
	RotateRefresh bool          // Optional: issue a new refresh token on every refresh (default: false)
	SeedUsername  string        // Optional: account created at startup
	SeedPassword  string        // Optional: password for SeedUsername

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SigningKey:          os.Getenv("DEVAPI_SIGNING_KEY"),
		AccessTTL:           getEnvDurationOrDefault("DEVAPI_ACCESS_TTL", 5*time.Minute),
		RefreshTTL:          getEnvDurationOrDefault("DEVAPI_REFRESH_TTL", 24*time.Hour),
		RotateRefresh:       getEnvBoolOrDefault("DEVAPI_ROTATE_REFRESH", false),
		SeedUsername:        os.Getenv("DEVAPI_SEED_USERNAME"),
		SeedPassword:        os.Getenv("DEVAPI_SEED_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds, matching SimpleJWT's settings
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
