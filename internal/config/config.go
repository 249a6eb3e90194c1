package config // package config loads application configuration from environment variables

import (
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/kelseyhightower/envconfig"
    "golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is used when JWT_SECRET is not provided.  It is only
// acceptable outside of production; Load refuses it when APP_ENV=prod.
const DefaultJWTSecret = "hotel-booking-secret-key"

// MinBcryptCost is the lowest bcrypt cost the service will hash with.
const MinBcryptCost = 10

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable named in its envconfig tag.
type Config struct {
    Env         string        `envconfig:"APP_ENV" default:"dev"`       // application environment (dev/test/prod)
    Port        string        `envconfig:"APP_PORT" default:"5000"`     // HTTP port to listen on
    DBUser      string        `envconfig:"DB_USER" default:"root"`      // database username
    DBPass      string        `envconfig:"DB_PASS"`                     // database password (empty allowed)
    DBHost      string        `envconfig:"DB_HOST" default:"127.0.0.1"` // database host address
    DBPort      string        `envconfig:"DB_PORT" default:"3306"`      // database port number
    DBName      string        `envconfig:"DB_NAME" default:"hotel_booking"`
    JWTSecret   string        `envconfig:"JWT_SECRET"`                  // secret used to sign session tokens
    TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`     // session token lifetime
    BcryptCost  int           `envconfig:"BCRYPT_COST" default:"10"`    // bcrypt cost for password hashing
    CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`    // allowed origins for the SPA
    AutoMigrate bool          `envconfig:"AUTO_MIGRATE" default:"true"` // create tables at startup
    SeedHotels  bool          `envconfig:"SEED_HOTELS" default:"false"` // insert demo catalog at startup
}

// IsProd reports whether the service runs in the production environment.
func (c Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production") }

// Load reads configuration values from environment variables and returns a
// Config.  A missing JWT_SECRET falls back to DefaultJWTSecret with a warning,
// except in production where it is an error.
func Load() (Config, error) {
    var c Config
    if err := envconfig.Process("", &c); err != nil {
        return Config{}, fmt.Errorf("config: %w", err)
    }
    if c.JWTSecret == "" {
        if c.IsProd() {
            return Config{}, errors.New("config: JWT_SECRET is required in production")
        }
        log.Printf("config: JWT_SECRET not set, using insecure default (env=%s)", c.Env)
        c.JWTSecret = DefaultJWTSecret
    }
    if c.BcryptCost < MinBcryptCost {
        c.BcryptCost = MinBcryptCost
    }
    if c.BcryptCost > bcrypt.MaxCost {
        log.Printf("config: BCRYPT_COST %d above %d, clamping", c.BcryptCost, bcrypt.MaxCost)
        c.BcryptCost = bcrypt.MaxCost
    }
    if c.TokenTTL <= 0 {
        c.TokenTTL = 24 * time.Hour
    }
    return c, nil
}
