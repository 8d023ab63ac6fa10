package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL       string `yaml:"database_url"`
	HTTPListenAddr    string `yaml:"http_listen_addr"`
	MetricsListenAddr string `yaml:"metrics_listen_addr"`
	LogLevel          string `yaml:"log_level"`
	ServiceName       string `yaml:"service_name"`
	// TierTimezone is the IANA zone (or "Local") that decides which calendar
	// day counts as today when tiers are computed.
	TierTimezone string `yaml:"tier_timezone"`
	// StrictCreateEmailCheck makes the HTTP layer reject malformed emails on
	// create before the request reaches the service.
	StrictCreateEmailCheck bool `yaml:"strict_create_email_check"`
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPListenAddr:         ":8080",
		LogLevel:               "info",
		ServiceName:            "customer-api",
		TierTimezone:           "Local",
		StrictCreateEmailCheck: true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.HTTPListenAddr = getEnv("HTTP_LISTEN_ADDR", cfg.HTTPListenAddr)
	cfg.MetricsListenAddr = getEnv("METRICS_LISTEN_ADDR", cfg.MetricsListenAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.TierTimezone = getEnv("TIER_TIMEZONE", cfg.TierTimezone)

	if v := os.Getenv("STRICT_CREATE_EMAIL_CHECK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse STRICT_CREATE_EMAIL_CHECK: %w", err)
		}
		cfg.StrictCreateEmailCheck = b
	}

	return cfg, nil
}

// Validate checks the settings the given binary needs. "customer-api" needs a
// listen address; "migrate" needs a database.
func (c *Config) Validate(binary string) error {
	var missing []string
	switch binary {
	case "customer-api":
		if c.HTTPListenAddr == "" {
			missing = append(missing, "HTTP_LISTEN_ADDR")
		}
	case "migrate":
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config for %s: %s", binary, strings.Join(missing, ", "))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TierTimezone.
func (c *Config) Location() (*time.Location, error) {
	if c.TierTimezone == "" || c.TierTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TierTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIER_TIMEZONE %q: %w", c.TierTimezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
