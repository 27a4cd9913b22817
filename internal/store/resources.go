// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"clientboot/internal/deploy"
)

// DefaultSeed is the seed used when the application does not list one in
// yui.config.seed.
var DefaultSeed = []string{"yui-base", "loader-base", "loader-yui3", "loader-app"}

// ConfigResolver resolves the merged application config for a context.
// *AppConfigStore implements it.
type ConfigResolver interface {
	Resolve(ctx context.Context, c deploy.Context) (map[string]any, error)
}

// ConfigCache memoizes resolved configurations by context key.
// *cache.ConfigCache implements it.
type ConfigCache interface {
	Get(ctx context.Context, key string) (map[string]any, bool)
	Set(ctx context.Context, key string, config map[string]any)
}

// Resources answers the deploy unit's configuration questions from the
// application config sections. It implements deploy.ResourceStore.
type Resources struct {
	resolver     ConfigResolver
	cache        ConfigCache
	defaultGroup deploy.GroupConfig
}

// NewResources creates Resources on top of a resolver. cache may be nil.
// defaultGroup is the app group config used for any field the application
// does not set in yui.config.groups.app.
func NewResources(resolver ConfigResolver, cache ConfigCache, defaultGroup deploy.GroupConfig) *Resources {
	return &Resources{resolver: resolver, cache: cache, defaultGroup: defaultGroup}
}

// AppConfig returns the application config for c.
func (r *Resources) AppConfig(ctx context.Context, c deploy.Context) (map[string]any, error) {
	key := ContextKey(c)
	if r.cache != nil {
		if cfg, ok := r.cache.Get(ctx, key); ok {
			return cfg, nil
		}
	}

	cfg, err := r.resolver.Resolve(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("resolve app config %s: %w", key, err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, key, cfg)
	}
	return cfg, nil
}

// AppGroupConfig returns the loader group config for the application's own
// modules. Fields missing from yui.config.groups.app keep their defaults,
// so combine stays on unless the application turns it off explicitly.
func (r *Resources) AppGroupConfig(ctx context.Context, c deploy.Context) (deploy.GroupConfig, error) {
	group := r.defaultGroup

	cfg, err := r.AppConfig(ctx, c)
	if err != nil {
		return group, err
	}

	app, ok := lookup(cfg, "yui", "config", "groups", "app").(map[string]any)
	if !ok {
		return group, nil
	}
	raw, err := json.Marshal(app)
	if err != nil {
		return group, fmt.Errorf("encode app group: %w", err)
	}
	if err := json.Unmarshal(raw, &group); err != nil {
		return group, fmt.Errorf("decode app group: %w", err)
	}
	return group, nil
}

// AppSeedFiles returns yui.config.seed, or DefaultSeed when it is not set.
func (r *Resources) AppSeedFiles(ctx context.Context, c deploy.Context) ([]string, error) {
	cfg, err := r.AppConfig(ctx, c)
	if err != nil {
		return nil, err
	}

	list, ok := lookup(cfg, "yui", "config", "seed").([]any)
	if !ok {
		return slices.Clone(DefaultSeed), nil
	}
	seeds := make([]string, 0, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("yui.config.seed[%d]: expected string, got %T", i, v)
		}
		seeds = append(seeds, s)
	}
	return seeds, nil
}

// ContextKey renders c as a stable "k=v,k=v" string sorted by dimension.
func ContextKey(c deploy.Context) string {
	keys := slices.Sorted(maps.Keys(c))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+c[k])
	}
	return strings.Join(parts, ",")
}

// lookup walks nested generic maps, returning nil when a step is missing.
func lookup(m map[string]any, path ...string) any {
	var cur any = m
	for _, p := range path {
		next, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = next[p]
	}
	return cur
}
