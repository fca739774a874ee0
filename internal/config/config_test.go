package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "KV_BACKEND", "MAX_PRICE", "NOTIFY_TTL", "NOTIFY_MAX", "SESSION_IDLE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.KVBackend != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxPrice != DefaultMaxPrice {
		t.Fatalf("want MaxPrice %d, got %v", DefaultMaxPrice, cfg.MaxPrice)
	}
	if cfg.NotifyTTL != 3*time.Second {
		t.Fatalf("want 3s notify ttl, got %s", cfg.NotifyTTL)
	}
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("MAX_PRICE", "1000")
	t.Setenv("NOTIFY_TTL", "nonsense")
	t.Setenv("NOTIFY_MAX", "5")
	cfg := Load()
	if cfg.MaxPrice != 1000 {
		t.Fatalf("MAX_PRICE not applied: %v", cfg.MaxPrice)
	}
	if cfg.NotifyTTL != 3*time.Second {
		t.Fatalf("bad NOTIFY_TTL should fall back, got %s", cfg.NotifyTTL)
	}
	if cfg.NotifyMax != 5 {
		t.Fatalf("NOTIFY_MAX not applied: %d", cfg.NotifyMax)
	}
}
