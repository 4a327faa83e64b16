package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig defines settings for the availability cache.  When Enabled
// is false or no Redis client could be built, the service computes every
// availability query directly from the store.  TTL is the idle lifetime
// of an entry (refreshed on access) and MaxEntries bounds the total
// number of cached windows, evicted least-recently-used first.
type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
	Prefix     string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// The defaults (1000 entries, 120s idle expiry) match the sizing the
// availability workload was tuned for.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:    getenv("CACHE_ENABLED", "true") == "true",
		TTL:        parseDur(getenv("CACHE_TTL", "120s")),
		MaxEntries: atoi(getenv("CACHE_MAX_ENTRIES", "1000")),
		Prefix:     getenv("CACHE_PREFIX", "availability"),
	}
}

// Helper functions shared with redis.go and ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
