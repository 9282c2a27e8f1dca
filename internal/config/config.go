// Package config loads configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// Backend
	ServerURL string
	Timeout   time.Duration

	// Folder listing page size, fixed by the server
	PageSize int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment with defaults. A .env
// file in the working directory is honored when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		ServerURL: envOr("DRIVE_SERVER_URL", "http://localhost:8000"),
		Timeout:   envDuration("DRIVE_TIMEOUT", 30*time.Second),
		PageSize:  envInt("DRIVE_PAGE_SIZE", 10),
		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "console"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
