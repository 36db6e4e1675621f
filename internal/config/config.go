package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr   string
	LogLevel   slog.Level
	CatalogDir string
	SpinTick   time.Duration
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:   envOr("HTTP_ADDR", ":8050"),
		CatalogDir: envOr("CATALOG_DIR", "."),
		SpinTick:   50 * time.Millisecond,
	}

	if v := envOr("SPIN_TICK", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SPIN_TICK %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SPIN_TICK must be positive, got %s", d)
		}
		c.SpinTick = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

// envOr returns the trimmed value of key, or fallback when it is unset or blank.
func envOr(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if v = strings.TrimSpace(v); !ok || v == "" {
		return fallback
	}
	return v
}

// parseLogLevel accepts slog level names in any case, with an optional
// offset such as "info+2".
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
