package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultMaxUploadBytes caps multipart uploads at 8 MiB, plenty for
// thousands of ledger rows.
const DefaultMaxUploadBytes int64 = 8 << 20

// Config holds server configuration
type Config struct {
	Port           string
	LogLevel       string
	MaxUploadBytes int64
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		MaxUploadBytes: DefaultMaxUploadBytes,
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		cfg.MaxUploadBytes = n
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
