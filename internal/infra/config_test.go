package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("STORAGE_SIGNING_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("SIGNED_URL_TTL_SECONDS", "")
	t.Setenv("RASTER_NAV_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.StorageBaseURL != "http://localhost:8080/v1/files" {
		t.Fatalf("StorageBaseURL mismatch: got %q", cfg.StorageBaseURL)
	}
	if cfg.SignedURLTTL != time.Hour {
		t.Fatalf("SignedURLTTL mismatch: got %v want %v", cfg.SignedURLTTL, time.Hour)
	}
	if cfg.RasterNavTimeout != 15*time.Second {
		t.Fatalf("RasterNavTimeout mismatch: got %v", cfg.RasterNavTimeout)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("HTTPWriteTimeout mismatch: got %v", cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_SIGNING_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadConfigRequiresSigningSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("STORAGE_SIGNING_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when STORAGE_SIGNING_SECRET is empty")
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("STORAGE_SIGNING_SECRET", "test-secret")
	t.Setenv("SIGNED_URL_TTL_SECONDS", "600")
	t.Setenv("RASTER_SETTLE_DELAY_MS", "250")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "12")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SignedURLTTL != 10*time.Minute {
		t.Fatalf("SignedURLTTL mismatch: got %v want %v", cfg.SignedURLTTL, 10*time.Minute)
	}
	if cfg.RasterSettleDelay != 250*time.Millisecond {
		t.Fatalf("RasterSettleDelay mismatch: got %v", cfg.RasterSettleDelay)
	}
	if cfg.RateLimitPerMin != 12 {
		t.Fatalf("RateLimitPerMin mismatch: got %d want 12", cfg.RateLimitPerMin)
	}
}
