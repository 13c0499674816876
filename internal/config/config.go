package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	HistoryWorkerCount    int
	HistoryQueueSize      int
	DigestIntervalMinutes int
	DueLimit              int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:codeflash.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		HistoryWorkerCount:    envIntOr("HISTORY_WORKER_COUNT", 1),
		HistoryQueueSize:      envIntOr("HISTORY_QUEUE_SIZE", 128),
		DigestIntervalMinutes: envIntOr("DIGEST_INTERVAL_MINUTES", 60),
		DueLimit:              envIntOr("DUE_LIMIT", 100),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.HistoryWorkerCount < 1 || c.HistoryWorkerCount > 32 {
		errs = append(errs, fmt.Errorf("HISTORY_WORKER_COUNT must be between 1 and 32, got %d", c.HistoryWorkerCount))
	}
	if c.HistoryQueueSize < 1 {
		errs = append(errs, fmt.Errorf("HISTORY_QUEUE_SIZE must be positive, got %d", c.HistoryQueueSize))
	}
	if c.DigestIntervalMinutes < 0 {
		errs = append(errs, fmt.Errorf("DIGEST_INTERVAL_MINUTES cannot be negative, got %d", c.DigestIntervalMinutes))
	}
	if c.DueLimit < 1 {
		errs = append(errs, fmt.Errorf("DUE_LIMIT must be positive, got %d", c.DueLimit))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
