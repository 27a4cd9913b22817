// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"clientboot/internal/models"
)

// RouteStore reads the application route table. It implements
// deploy.RouteMaker.
type RouteStore struct {
	db      *sql.DB
	typeMap *pgtype.Map
}

// NewRouteStore creates a new RouteStore with the given database connection.
func NewRouteStore(db *sql.DB) *RouteStore {
	return &RouteStore{db: db, typeMap: pgtype.NewMap()}
}

// List returns the routes in table order.
func (s *RouteStore) List(ctx context.Context) ([]models.Route, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, path, verbs, call, params
		FROM routes ORDER BY position, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		var params []byte
		if err := rows.Scan(&r.Name, &r.Path, s.typeMap.SQLScanner(&r.Verbs), &r.Call, &params); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		if err := json.Unmarshal(params, &r.Params); err != nil {
			return nil, fmt.Errorf("decode params of route %s: %w", r.Name, err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// ComputedRoutes returns the route table keyed by route name, the shape the
// client runtime expects.
func (s *RouteStore) ComputedRoutes(ctx context.Context) (any, error) {
	routes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return computeRoutes(routes), nil
}

func computeRoutes(routes []models.Route) map[string]models.Route {
	out := make(map[string]models.Route, len(routes))
	for _, r := range routes {
		out[r.Name] = r
	}
	return out
}

// Save upserts a route by name at the given table position.
func (s *RouteStore) Save(ctx context.Context, position int, r models.Route) error {
	params := r.Params
	if params == nil {
		params = map[string]string{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode params of route %s: %w", r.Name, err)
	}
	verbs := r.Verbs
	if len(verbs) == 0 {
		verbs = []string{"get"}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO routes (name, path, verbs, call, params, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			path = EXCLUDED.path, verbs = EXCLUDED.verbs, call = EXCLUDED.call,
			params = EXCLUDED.params, position = EXCLUDED.position`,
		r.Name, r.Path, verbs, r.Call, raw, position,
	)
	if err != nil {
		return fmt.Errorf("save route %s: %w", r.Name, err)
	}
	return nil
}
