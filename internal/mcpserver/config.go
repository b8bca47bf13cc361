package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result limits.
	FindingsLimit int
	MaxLimit      int
	MaxInlineSize int64

	// Check tool defaults.
	CheckSeverity string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASDRIFT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASDRIFT_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASDRIFT_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASDRIFT_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASDRIFT_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASDRIFT_CACHE_SWEEP_INTERVAL", 60*time.Second),
		FindingsLimit:      envInt("OASDRIFT_FINDINGS_LIMIT", 100),
		MaxLimit:           envInt("OASDRIFT_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("OASDRIFT_MAX_INLINE_SIZE", 10*1024*1024),
		CheckSeverity:      envSeverity("OASDRIFT_CHECK_SEVERITY", "error"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// validSeverities is the set of recognised severity names.
// Must stay in sync with severity.Parse.
var validSeverities = map[string]bool{
	"error": true, "warning": true, "warn": true,
	"info": true, "critical": true,
}

func envSeverity(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !validSeverities[v] {
		slog.Warn("invalid severity env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
