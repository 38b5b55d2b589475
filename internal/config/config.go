package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	PersistWorkerCount int
	PersistQueueSize   int
	MaxIntervalDays    int
	ActivityDays       int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		PersistWorkerCount: envIntOr("PERSIST_WORKER_COUNT", 2),
		PersistQueueSize:   envIntOr("PERSIST_QUEUE_SIZE", 128),
		// 0 leaves review intervals uncapped.
		MaxIntervalDays: envIntOr("MAX_INTERVAL_DAYS", 0),
		ActivityDays:    envIntOr("ACTIVITY_DAYS", 30),
	}
}

// Validate checks the loaded configuration and reports every problem at
// once so misconfiguration is fixed in one pass.
func (c Config) Validate() error {
	var errs []string

	if c.Addr == "" {
		errs = append(errs, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.PersistWorkerCount < 1 {
		errs = append(errs, "PERSIST_WORKER_COUNT must be at least 1")
	}
	if c.PersistQueueSize < 1 {
		errs = append(errs, "PERSIST_QUEUE_SIZE must be at least 1")
	}
	if c.MaxIntervalDays < 0 {
		errs = append(errs, "MAX_INTERVAL_DAYS cannot be negative")
	}
	if c.ActivityDays < 1 {
		errs = append(errs, "ACTIVITY_DAYS must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
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
