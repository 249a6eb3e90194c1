package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != DefaultJWTSecret {
		t.Fatalf("expected default secret, got %q", cfg.JWTSecret)
	}
	if cfg.BcryptCost != MinBcryptCost {
		t.Fatalf("expected cost clamped to %d, got %d", MinBcryptCost, cfg.BcryptCost)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Port)
	}
}

func TestLoadClampsBcryptCeiling(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BCRYPT_COST", "40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BcryptCost != 31 {
		t.Fatalf("expected cost clamped to 31, got %d", cfg.BcryptCost)
	}
}

func TestLoadRequiresSecretInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET in prod")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("ttl = %s, want 10s", cfg.TTL)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled || cfg.TTL != time.Minute || cfg.Prefix != "cache" || cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("unexpected cache config %+v", cfg)
	}
}

func TestLoadQueueConfigAlias(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@broker:5672/")

	cfg := LoadQueueConfig()
	if cfg.URL != "amqp://u:p@broker:5672/" {
		t.Fatalf("url = %q", cfg.URL)
	}
	if cfg.Queue != "booking.events" {
		t.Fatalf("queue = %q", cfg.Queue)
	}
}
