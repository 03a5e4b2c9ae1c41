package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/specdelta/coverage"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Coverage tool defaults.
	CoverageIgnored []string

	// Loader defaults.
	StrictLoading bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SPECDELTA_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    envBool("SPECDELTA_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("SPECDELTA_CACHE_MAX_SIZE", 16),
		CacheTTL:        envDuration("SPECDELTA_CACHE_TTL", 15*time.Minute),
		MaxInlineSize:   int64(envInt("SPECDELTA_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs: envBool("SPECDELTA_ALLOW_PRIVATE_IPS", false),
		CoverageIgnored: envList("SPECDELTA_COVERAGE_IGNORED", coverage.DefaultIgnored),
		StrictLoading:   envBool("SPECDELTA_STRICT_LOADING", false),
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

// envList reads a comma-separated list. Surrounding spaces and empty items
// are dropped; "-" alone means an explicitly empty list.
func envList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return append([]string(nil), fallback...)
	}
	if v == "-" {
		return []string{}
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
