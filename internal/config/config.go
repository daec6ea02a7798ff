// Package config loads application configuration from the environment,
// with a .env file as an optional convenience for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int
	LogLevel string
	LogDir   string
	APIKey   string // API key for the local HTTP API

	DBPath      string // SQLite database file
	CatalogPath string // optional YAML catalog override, empty uses builtins

	SyncURL   string // multiplayer sync server WebSocket URL
	SyncToken string // bearer credential for the sync server

	TickInterval       time.Duration
	AutosaveEvery      time.Duration
	BackgroundInterval time.Duration
	RecentSaveSkip     time.Duration
	AdminChangeSkip    time.Duration
	RestockInterval    time.Duration

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env if present; real environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		APIKey:      getEnv("API_KEY", ""),
		DBPath:      getEnv("DB_PATH", "gardenbloom.db"),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		SyncURL:     getEnv("SYNC_URL", ""),
		SyncToken:   getEnv("SYNC_TOKEN", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	durations := []struct {
		dst *time.Duration
		key string
		def time.Duration
	}{
		{&cfg.TickInterval, "TICK_INTERVAL", time.Second},
		{&cfg.AutosaveEvery, "AUTOSAVE_INTERVAL", 30 * time.Second},
		{&cfg.BackgroundInterval, "BACKGROUND_INTERVAL", 5 * time.Second},
		{&cfg.RecentSaveSkip, "RECENT_SAVE_SKIP", time.Minute},
		{&cfg.AdminChangeSkip, "ADMIN_CHANGE_SKIP", 2 * time.Minute},
		{&cfg.RestockInterval, "RESTOCK_INTERVAL", 5 * time.Minute},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	cfg.EventDeadLetterPath = getEnv("EVENT_DEADLETTER_PATH", "")
	retriesStr := getEnv("EVENT_MAX_RETRIES", "0")
	retries, err := strconv.Atoi(retriesStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_MAX_RETRIES value: %w", err)
	}
	cfg.EventMaxRetries = retries
	if cfg.EventRetryDelay, err = getDuration("EVENT_RETRY_DELAY", 0); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDuration parses a duration environment variable.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return d, nil
}
