// Package config contains everything related to configuration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DataDir     string
	CatalogPath string
	LogFile     string
	Catalog     *Catalog
	PageSize    int
	MaxMonth    int
	CacheSize   int
	NotifyAfter time.Duration
	LogLevel    slog.Level
	Charts      bool
	Plain       bool
	Notify      bool
}

// Default values
const (
	defaultPageSize    = 5
	defaultMaxMonth    = 6
	defaultCacheSize   = 3
	defaultNotifyAfter = 5 * time.Second
	defaultCatalogName = "cities.yaml"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:     getEnvString("BIKESHARE_DATA_DIR", "."),
		CatalogPath: getEnvString("BIKESHARE_CATALOG", ""),
		LogFile:     getEnvString("BIKESHARE_LOG_FILE", ""),
		PageSize:    getEnvInt("BIKESHARE_PAGE_SIZE", defaultPageSize),
		MaxMonth:    getEnvInt("BIKESHARE_MAX_MONTH", defaultMaxMonth),
		CacheSize:   getEnvInt("BIKESHARE_CACHE_SIZE", defaultCacheSize),
		NotifyAfter: getEnvDuration("BIKESHARE_NOTIFY_AFTER", defaultNotifyAfter),
		LogLevel:    getEnvLevel("BIKESHARE_LOG_LEVEL", slog.LevelWarn),
		Charts:      getEnvBool("BIKESHARE_CHARTS", true),
		Plain:       getEnvBool("BIKESHARE_PLAIN", false) || os.Getenv("NO_COLOR") != "",
		Notify:      getEnvBool("BIKESHARE_NOTIFY", false),
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates tunables and loads the city catalog. It is called by
// Load and again after command-line overrides change DataDir.
func (c *Config) Finalize() error {
	if c.PageSize < 1 {
		return fmt.Errorf("BIKESHARE_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.MaxMonth < 1 || c.MaxMonth > 12 {
		return fmt.Errorf("BIKESHARE_MAX_MONTH must be between 1 and 12, got %d", c.MaxMonth)
	}
	if c.CacheSize < 1 {
		c.CacheSize = 1
	}

	catalogPath := c.CatalogPath
	if catalogPath == "" {
		candidate := filepath.Join(c.DataDir, defaultCatalogName)
		if _, err := os.Stat(candidate); err == nil {
			catalogPath = candidate
		}
	}

	catalog, err := LoadCatalog(catalogPath, c.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load city catalog: %w", err)
	}
	c.Catalog = catalog
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "bikeshare", ".env"),
			filepath.Join(home, ".bikeshare", ".env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool accepts anything strconv.ParseBool does.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvLevel parses debug, info, warn or error.
func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}
