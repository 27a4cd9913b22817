// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"clientboot/internal/deploy"
)

type fakeResolver struct {
	config map[string]any
	err    error
	calls  int
}

func (f *fakeResolver) Resolve(context.Context, deploy.Context) (map[string]any, error) {
	f.calls++
	return f.config, f.err
}

type memoryCache struct {
	entries map[string]map[string]any
}

func (m *memoryCache) Get(_ context.Context, key string) (map[string]any, bool) {
	cfg, ok := m.entries[key]
	return cfg, ok
}

func (m *memoryCache) Set(_ context.Context, key string, cfg map[string]any) {
	m.entries[key] = cfg
}

var testGroup = deploy.GroupConfig{
	Base:      "/static/",
	ComboBase: "/combo~",
	ComboSep:  "~",
	Combine:   true,
}

func TestResourcesAppGroupConfig(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		want   deploy.GroupConfig
	}{
		{
			name:   "defaults when unset",
			config: map[string]any{},
			want:   testGroup,
		},
		{
			name: "partial override keeps combine",
			config: map[string]any{"yui": map[string]any{"config": map[string]any{
				"groups": map[string]any{"app": map[string]any{"root": "app/", "comboSep": "&"}},
			}}},
			want: deploy.GroupConfig{Base: "/static/", Root: "app/", ComboBase: "/combo~", ComboSep: "&", Combine: true},
		},
		{
			name: "combine turned off",
			config: map[string]any{"yui": map[string]any{"config": map[string]any{
				"groups": map[string]any{"app": map[string]any{"combine": false}},
			}}},
			want: deploy.GroupConfig{Base: "/static/", ComboBase: "/combo~", ComboSep: "~", Combine: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResources(&fakeResolver{config: tt.config}, nil, testGroup)
			got, err := r.AppGroupConfig(context.Background(), deploy.Context{})
			if err != nil {
				t.Fatalf("AppGroupConfig: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResourcesAppSeedFiles(t *testing.T) {
	t.Run("default seed", func(t *testing.T) {
		r := NewResources(&fakeResolver{config: map[string]any{}}, nil, testGroup)
		got, err := r.AppSeedFiles(context.Background(), deploy.Context{})
		if err != nil {
			t.Fatalf("AppSeedFiles: %v", err)
		}
		if !slices.Equal(got, DefaultSeed) {
			t.Errorf("got %q, want %q", got, DefaultSeed)
		}
		got[0] = "changed"
		if DefaultSeed[0] == "changed" {
			t.Error("DefaultSeed must not be shared with callers")
		}
	})

	t.Run("configured seed", func(t *testing.T) {
		cfg := map[string]any{"yui": map[string]any{"config": map[string]any{
			"seed": []any{"yui-base", "http://cdn/x.js"},
		}}}
		r := NewResources(&fakeResolver{config: cfg}, nil, testGroup)
		got, err := r.AppSeedFiles(context.Background(), deploy.Context{})
		if err != nil {
			t.Fatalf("AppSeedFiles: %v", err)
		}
		if want := []string{"yui-base", "http://cdn/x.js"}; !slices.Equal(got, want) {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("malformed seed", func(t *testing.T) {
		cfg := map[string]any{"yui": map[string]any{"config": map[string]any{
			"seed": []any{"yui-base", 42.0},
		}}}
		r := NewResources(&fakeResolver{config: cfg}, nil, testGroup)
		_, err := r.AppSeedFiles(context.Background(), deploy.Context{})
		if err == nil || !strings.Contains(err.Error(), "seed[1]") {
			t.Errorf("got %v, want seed[1] error", err)
		}
	})
}

func TestResourcesCache(t *testing.T) {
	resolver := &fakeResolver{config: map[string]any{"log": "info"}}
	cache := &memoryCache{entries: map[string]map[string]any{}}
	r := NewResources(resolver, cache, testGroup)
	ctx := context.Background()
	c := deploy.Context{"runtime": "client", "lang": "en-US"}

	for i := 0; i < 3; i++ {
		if _, err := r.AppConfig(ctx, c); err != nil {
			t.Fatalf("AppConfig: %v", err)
		}
	}
	if resolver.calls != 1 {
		t.Errorf("resolver called %d times, want 1", resolver.calls)
	}
	if _, ok := cache.entries["lang=en-US,runtime=client"]; !ok {
		t.Errorf("cache keys: %v", cache.entries)
	}
}

func TestResourcesErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewResources(&fakeResolver{err: boom}, nil, testGroup)
	ctx := context.Background()

	if _, err := r.AppConfig(ctx, deploy.Context{}); !errors.Is(err, boom) {
		t.Errorf("AppConfig: got %v", err)
	}
	if _, err := r.AppGroupConfig(ctx, deploy.Context{}); !errors.Is(err, boom) {
		t.Errorf("AppGroupConfig: got %v", err)
	}
	if _, err := r.AppSeedFiles(ctx, deploy.Context{}); !errors.Is(err, boom) {
		t.Errorf("AppSeedFiles: got %v", err)
	}
}

func TestContextKey(t *testing.T) {
	tests := []struct {
		ctx  deploy.Context
		want string
	}{
		{nil, ""},
		{deploy.Context{"runtime": "client"}, "runtime=client"},
		{deploy.Context{"runtime": "client", "lang": "de", "env": "dev"}, "env=dev,lang=de,runtime=client"},
	}
	for _, tt := range tests {
		if got := ContextKey(tt.ctx); got != tt.want {
			t.Errorf("ContextKey(%v) = %q, want %q", tt.ctx, got, tt.want)
		}
	}
}
