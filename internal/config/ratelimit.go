package config

import (
    "time"

    "github.com/kelseyhightower/envconfig"
)

// RateLimitConfig controls the Redis token buckets that throttle credential
// attempts on the authentication endpoints.
type RateLimitConfig struct {
    Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
    Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"20"`
    RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
    RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"3s"`
    TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
    Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  Unparseable input falls
// back to the defaults and out-of-range values are clamped.
func LoadRateLimitConfig() RateLimitConfig {
    var def RateLimitConfig
    if err := envconfig.Process("", &def); err != nil {
        def = RateLimitConfig{
            Enabled:        true,
            Capacity:       20,
            RefillTokens:   1,
            RefillInterval: 3 * time.Second,
            TTL:            10 * time.Minute,
            Prefix:         "rl",
        }
    }
    return def.normalize()
}

func (def RateLimitConfig) normalize() RateLimitConfig {
    if def.Capacity < 1 { def.Capacity = 1 }
    if def.RefillTokens < 1 { def.RefillTokens = 1 }
    if def.RefillInterval <= 0 { def.RefillInterval = time.Second }
    minTTL := 5 * def.RefillInterval
    if def.TTL < minTTL { def.TTL = minTTL }
    return def
}
