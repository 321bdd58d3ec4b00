// Package config loads runtime configuration from the environment,
// with a .env file picked up when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is the full runtime configuration.
type Config struct {
	Port      string
	DBPath    string // empty means in-memory store only
	JWTSecret string
	TokenTTL  time.Duration

	// DefaultRate is the per-hour salary rate for records without one.
	DefaultRate decimal.Decimal

	// Holidays are YYYY-MM-DD dates excluded from working days.
	// Empty means the stock calendar.
	Holidays []string
}

// Load reads configuration from the environment.
func Load() Config {
	_ = godotenv.Load() // .env is optional

	cfg := Config{
		Port:        envOr("PORT", "8080"),
		DBPath:      os.Getenv("DB"),
		JWTSecret:   envOr("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTL:    24 * time.Hour,
		DefaultRate: decimal.NewFromInt(250),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.TokenTTL = d
		}
	}
	if rate := os.Getenv("RATE_PER_HOUR"); rate != "" {
		if f, err := strconv.ParseFloat(rate, 64); err == nil && f > 0 {
			cfg.DefaultRate = decimal.NewFromFloat(f)
		}
	}
	if hs := os.Getenv("HOLIDAYS"); hs != "" {
		for _, h := range strings.Split(hs, ",") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.Holidays = append(cfg.Holidays, h)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
