package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv               string
	Port                 string
	DatabaseURL          string
	StoragePath          string
	StorageBaseURL       string
	StorageSigningSecret string
	SignedURLTTL         time.Duration
	GeoIPDBPath          string
	BrowserBin           string
	RasterNavTimeout     time.Duration
	RasterSettleDelay    time.Duration
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
	HTTPIdleTimeout      time.Duration
	RateLimitPerMin      int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		StoragePath:          getEnv("STORAGE_PATH", "./data/storage"),
		StorageBaseURL:       getEnv("STORAGE_BASE_URL", "http://localhost:8080/v1/files"),
		StorageSigningSecret: os.Getenv("STORAGE_SIGNING_SECRET"),
		SignedURLTTL:         time.Second * time.Duration(getEnvInt("SIGNED_URL_TTL_SECONDS", 3600)),
		GeoIPDBPath:          os.Getenv("GEOIP_DB_PATH"),
		BrowserBin:           os.Getenv("BROWSER_BIN"),
		RasterNavTimeout:     time.Second * time.Duration(getEnvInt("RASTER_NAV_TIMEOUT_SECONDS", 15)),
		RasterSettleDelay:    time.Millisecond * time.Duration(getEnvInt("RASTER_SETTLE_DELAY_MS", 150)),
		HTTPReadTimeout:      time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:     time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:      time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.StorageSigningSecret == "" {
		return nil, fmt.Errorf("STORAGE_SIGNING_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
