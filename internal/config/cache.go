package config

import (
    "time"

    "github.com/kelseyhightower/envconfig"
)

// CacheConfig controls the Redis cache in front of the hotel catalog reads.
// Hotels are not writable through the API, so a cached entry only goes stale
// when the catalog is changed out-of-band; TTL bounds that window.
type CacheConfig struct {
    Enabled      bool          `envconfig:"CACHE_ENABLED" default:"true"`
    TTL          time.Duration `envconfig:"CACHE_TTL" default:"60s"`
    Prefix       string        `envconfig:"CACHE_PREFIX" default:"cache"`
    MaxBodyBytes int           `envconfig:"CACHE_MAX_BODY_BYTES" default:"1048576"`
}

// LoadCacheConfig reads CACHE_* variables, falling back to the defaults on
// unparseable input.
func LoadCacheConfig() CacheConfig {
    var cfg CacheConfig
    if err := envconfig.Process("", &cfg); err != nil {
        cfg = CacheConfig{Enabled: true, TTL: 60 * time.Second, Prefix: "cache", MaxBodyBytes: 1 << 20}
    }
    return cfg
}
