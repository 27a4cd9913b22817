// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"clientboot/internal/deploy"
	"clientboot/internal/models"
)

// AppConfigStore manages the application configuration sections.
type AppConfigStore struct {
	db      *sql.DB
	typeMap *pgtype.Map
}

// NewAppConfigStore returns a new AppConfigStore backed by the given database.
func NewAppConfigStore(db *sql.DB) *AppConfigStore {
	return &AppConfigStore{db: db, typeMap: pgtype.NewMap()}
}

// List returns every section, least specific first.
func (s *AppConfigStore) List(ctx context.Context) ([]models.AppConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, settings, config FROM app_configs
		ORDER BY cardinality(settings), id
	`)
	if err != nil {
		return nil, fmt.Errorf("list app configs: %w", err)
	}
	defer rows.Close()

	var sections []models.AppConfig
	for rows.Next() {
		var a models.AppConfig
		var raw []byte
		if err := rows.Scan(&a.ID, s.typeMap.SQLScanner(&a.Settings), &raw); err != nil {
			return nil, fmt.Errorf("scan app config: %w", err)
		}
		if err := json.Unmarshal(raw, &a.Config); err != nil {
			return nil, fmt.Errorf("decode app config %d: %w", a.ID, err)
		}
		sections = append(sections, a)
	}
	return sections, rows.Err()
}

// Resolve merges every section matching c into one configuration. Sections
// are applied least specific first so a "runtime:client" section overrides
// the master section, and "runtime:client,lang:de-DE" overrides both.
func (s *AppConfigStore) Resolve(ctx context.Context, c deploy.Context) (map[string]any, error) {
	sections, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return resolveSections(sections, c), nil
}

// Set upserts the section for the given selectors.
func (s *AppConfigStore) Set(ctx context.Context, settings []string, config map[string]any) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode app config: %w", err)
	}
	settings = slices.Clone(settings)
	slices.Sort(settings)
	if settings == nil {
		settings = []string{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_configs (settings, config, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (settings)
		DO UPDATE SET config = EXCLUDED.config, updated_at = EXCLUDED.updated_at`,
		settings, raw, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert app config: %w", err)
	}
	return nil
}

// resolveSections applies the matching sections in order of specificity.
// The sort is stable so sections of equal specificity keep their order.
func resolveSections(sections []models.AppConfig, c deploy.Context) map[string]any {
	matching := make([]models.AppConfig, 0, len(sections))
	for _, a := range sections {
		if a.Matches(c) {
			matching = append(matching, a)
		}
	}
	slices.SortStableFunc(matching, func(a, b models.AppConfig) int {
		return a.Specificity() - b.Specificity()
	})

	out := map[string]any{}
	for _, a := range matching {
		out = deepMerge(out, a.Config)
	}
	return out
}
