// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clientboot/internal/deploy"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Client loader
	LoaderVersion   string // YUI version the seed and combo URLs point at
	LoaderBase      string // overrides the CDN base path when set
	LoaderComboBase string // overrides the CDN combo service when set

	// App group defaults, used when yui.config.groups.app leaves them out
	AppBase      string
	AppComboBase string
	AppComboSep  string

	SupportedLangs []string // first entry is the fallback
	PageCacheTTL   time.Duration

	// Page requests allowed per client per minute; 0 disables the limit.
	RateLimit int
	// Proxies (IPs or CIDRs) whose X-Forwarded-For / X-Real-IP are believed.
	TrustedProxies []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "clientboot"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "clientboot"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		LoaderVersion:   envOrDefault("LOADER_VERSION", "3.18.1"),
		LoaderBase:      os.Getenv("LOADER_BASE"),
		LoaderComboBase: os.Getenv("LOADER_COMBO_BASE"),

		AppBase:      envOrDefault("APP_GROUP_BASE", "/static/"),
		AppComboBase: envOrDefault("APP_GROUP_COMBO_BASE", "/combo~"),
		AppComboSep:  envOrDefault("APP_GROUP_COMBO_SEP", "~"),

		SupportedLangs: splitList(envOrDefault("SUPPORTED_LANGS", "en-US")),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
	}

	ttl, err := time.ParseDuration(envOrDefault("PAGE_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_CACHE_TTL: %w", err)
	}
	cfg.PageCacheTTL = ttl

	rate, err := strconv.Atoi(envOrDefault("RATE_LIMIT", "120"))
	if err != nil || rate < 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be a non-negative integer, got %q", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = rate

	if len(cfg.SupportedLangs) == 0 {
		return nil, fmt.Errorf("SUPPORTED_LANGS must list at least one language")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// LoaderDefaults returns the loader settings every bootstrap starts from:
// the public YUI CDN for the configured version unless overridden.
func (c *Config) LoaderDefaults() deploy.LoaderDefaults {
	d := deploy.LoaderDefaults{
		FetchCSS:  true,
		Combine:   true,
		Base:      "http://yui.yahooapis.com/" + c.LoaderVersion + "/build/",
		ComboBase: "http://yui.yahooapis.com/combo?",
		Root:      c.LoaderVersion + "/build/",
	}
	if c.LoaderBase != "" {
		d.Base = c.LoaderBase
	}
	if c.LoaderComboBase != "" {
		d.ComboBase = c.LoaderComboBase
	}
	return d
}

// AppGroupDefaults returns the app group config used for fields the
// application does not configure.
func (c *Config) AppGroupDefaults() deploy.GroupConfig {
	return deploy.GroupConfig{
		Base:      c.AppBase,
		ComboBase: c.AppComboBase,
		ComboSep:  c.AppComboSep,
		Combine:   true,
	}
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
