// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered pages. A page's HTML
// depends on the execution context (lang, ...) and on the path-to-root
// header, so both are part of the key next to the slug.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// PageKey builds the cache key of a page rendered for a context key and
// an optional path-to-root.
func PageKey(slug, contextKey, pathToRoot string) string {
	return slug + "@" + contextKey + "#" + pathToRoot
}

// Get retrieves cached HTML for a page key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidatePage removes every cached rendition of a page.
func (pc *PageCache) InvalidatePage(ctx context.Context, slug string) {
	n, err := deleteByPattern(ctx, pc.client, pageKeyPrefix+slug+"@*")
	if err != nil {
		slog.Warn("page cache invalidate error", "slug", slug, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "slug", slug, "deleted", n)
}

// InvalidateAll removes all cached pages. Used when the application config
// or the route table change, since every page embeds them.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	n, err := deleteByPattern(ctx, pc.client, pageKeyPrefix+"*")
	if err != nil {
		slog.Warn("page cache clear error", "error", err)
		return
	}
	if n > 0 {
		slog.Info("page cache fully cleared", "deleted", n)
	}
}
