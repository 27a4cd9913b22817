// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/allegro/bigcache/v3"
)

// DefaultLocalConfigTTL is how long a process keeps a resolved config
// before asking the shared cache again.
const DefaultLocalConfigTTL = 10 * time.Second

// SharedConfigCache is the cross-instance config cache behind the local
// one. *ConfigCache implements it.
type SharedConfigCache interface {
	Get(ctx context.Context, key string) (map[string]any, bool)
	Set(ctx context.Context, key string, cfg map[string]any)
	InvalidateAll(ctx context.Context)
}

// TieredConfigCache keeps resolved configs in process memory in front of
// a shared cache. Every page render resolves the config, so most lookups
// never leave the process.
type TieredConfigCache struct {
	local  *bigcache.BigCache
	shared SharedConfigCache
}

// NewTieredConfigCache creates the in-process tier. shared may be nil.
func NewTieredConfigCache(ctx context.Context, shared SharedConfigCache, ttl time.Duration) (*TieredConfigCache, error) {
	if ttl == 0 {
		ttl = DefaultLocalConfigTTL
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 1024
	cfg.Verbose = false

	local, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("local config cache: %w", err)
	}
	return &TieredConfigCache{local: local, shared: shared}, nil
}

// Get returns the config for key from memory, else from the shared cache.
func (tc *TieredConfigCache) Get(ctx context.Context, key string) (map[string]any, bool) {
	raw, err := tc.local.Get(key)
	if err == nil {
		var cfg map[string]any
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return cfg, true
		}
		tc.local.Delete(key)
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		slog.Warn("local config cache get error", "key", key, "error", err)
	}

	if tc.shared == nil {
		return nil, false
	}
	cfg, ok := tc.shared.Get(ctx, key)
	if ok {
		tc.setLocal(key, cfg)
	}
	return cfg, ok
}

// Set stores cfg in both tiers.
func (tc *TieredConfigCache) Set(ctx context.Context, key string, cfg map[string]any) {
	tc.setLocal(key, cfg)
	if tc.shared != nil {
		tc.shared.Set(ctx, key, cfg)
	}
}

// InvalidateAll empties both tiers. Other processes drop their local
// copies when the local TTL runs out.
func (tc *TieredConfigCache) InvalidateAll(ctx context.Context) {
	if err := tc.local.Reset(); err != nil {
		slog.Warn("local config cache reset error", "error", err)
	}
	if tc.shared != nil {
		tc.shared.InvalidateAll(ctx)
	}
}

// Close stops the local tier's cleanup goroutine.
func (tc *TieredConfigCache) Close() error {
	return tc.local.Close()
}

func (tc *TieredConfigCache) setLocal(key string, cfg map[string]any) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		slog.Warn("local config cache encode error", "key", key, "error", err)
		return
	}
	if err := tc.local.Set(key, raw); err != nil {
		slog.Warn("local config cache set error", "key", key, "error", err)
	}
}
