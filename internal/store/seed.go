// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"clientboot/internal/models"
)

// Seed populates the database with a development application: a master
// configuration section, a client-runtime section, a home page with one
// binder and a small route table. It is a no-op when a master section
// already exists, so local edits survive restarts.
func Seed(ctx context.Context, db *sql.DB) error {
	configs := NewAppConfigStore(db)
	pages := NewPageStore(db)
	routes := NewRouteStore(db)

	sections, err := configs.List(ctx)
	if err != nil {
		return fmt.Errorf("seed check app configs: %w", err)
	}
	for _, s := range sections {
		if len(s.Settings) == 0 {
			slog.Info("database already seeded, skipping")
			return nil
		}
	}

	if err := configs.Set(ctx, nil, map[string]any{
		"log": map[string]any{"level": "info"},
		"yui": map[string]any{
			"config": map[string]any{
				"seed": []any{"yui-base", "loader-base", "loader-yui3", "loader-app"},
				"groups": map[string]any{
					"app": map[string]any{"base": "/static/", "comboBase": "/combo~", "comboSep": "~", "root": ""},
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("seed master config: %w", err)
	}
	if err := configs.Set(ctx, []string{"runtime:client"}, map[string]any{
		"log": map[string]any{"level": "warn"},
	}); err != nil {
		return fmt.Errorf("seed client config: %w", err)
	}

	home, err := pages.FindBySlug(ctx, "home")
	if err != nil {
		return fmt.Errorf("seed check home page: %w", err)
	}
	if home == nil {
		// No slug: it is generated from the title.
		home, err = pages.Create(ctx, &models.Page{
			Title: "Home",
			Body:  `<div id="hello">Hello from the server.</div>`,
			Binders: []models.PageBinder{
				{ViewID: "hello", Name: "HelloBinderIndex", Type: "Hello"},
			},
		})
		if err != nil {
			return fmt.Errorf("seed home page: %w", err)
		}
	}

	for i, r := range []models.Route{
		{Name: "home", Path: "/", Verbs: []string{"get"}, Call: "hello.index"},
		{Name: "page", Path: "/:slug", Verbs: []string{"get"}, Call: "page.index"},
	} {
		if err := routes.Save(ctx, i, r); err != nil {
			return fmt.Errorf("seed routes: %w", err)
		}
	}

	slog.Info("database seeded with development application", "page", home.Slug)
	return nil
}
