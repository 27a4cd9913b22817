// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	configKeyPrefix = "appconfig:"

	// DefaultConfigTTL bounds how stale a resolved application config can be.
	DefaultConfigTTL = time.Minute
)

// ConfigCache stores resolved application configs as JSON, keyed by the
// execution context they were resolved for. Errors are logged and turned
// into misses; the caller falls back to the database.
type ConfigCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConfigCache creates a config cache backed by the given Valkey client.
func NewConfigCache(client *redis.Client, ttl time.Duration) *ConfigCache {
	if ttl == 0 {
		ttl = DefaultConfigTTL
	}
	return &ConfigCache{client: client, ttl: ttl}
}

// Get returns the cached config for a context key.
func (cc *ConfigCache) Get(ctx context.Context, key string) (map[string]any, bool) {
	raw, err := cc.client.Get(ctx, configKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("config cache get error", "key", key, "error", err)
		return nil, false
	}

	var cfg map[string]any
	if err := json.Unmarshal(raw, &cfg); err != nil {
		slog.Warn("config cache decode error", "key", key, "error", err)
		return nil, false
	}
	return cfg, true
}

// Set stores a resolved config for a context key.
func (cc *ConfigCache) Set(ctx context.Context, key string, cfg map[string]any) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		slog.Warn("config cache encode error", "key", key, "error", err)
		return
	}
	if err := cc.client.Set(ctx, configKeyPrefix+key, raw, cc.ttl).Err(); err != nil {
		slog.Warn("config cache set error", "key", key, "error", err)
	}
}

// InvalidateAll drops every cached config.
func (cc *ConfigCache) InvalidateAll(ctx context.Context) {
	if _, err := deleteByPattern(ctx, cc.client, configKeyPrefix+"*"); err != nil {
		slog.Warn("config cache clear error", "error", err)
	}
}
