// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clientboot/internal/models"
	"clientboot/internal/slug"
)

// PageStore handles all page-related database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// FindBySlug retrieves a page by its slug. Returns nil if not found.
func (s *PageStore) FindBySlug(ctx context.Context, pageSlug string) (*models.Page, error) {
	p := &models.Page{}
	var binders []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slug, title, body, binders, created_at, updated_at
		FROM pages WHERE slug = $1
	`, pageSlug).Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &binders, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	if err := json.Unmarshal(binders, &p.Binders); err != nil {
		return nil, fmt.Errorf("decode binders of page %s: %w", p.Slug, err)
	}
	return p, nil
}

// Create inserts a new page. An empty slug is generated from the title.
func (s *PageStore) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Slug == "" {
		return nil, fmt.Errorf("create page: empty slug")
	}
	if p.Binders == nil {
		p.Binders = []models.PageBinder{}
	}
	binders, err := json.Marshal(p.Binders)
	if err != nil {
		return nil, fmt.Errorf("encode binders: %w", err)
	}

	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, slug, title, body, binders, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Slug, p.Title, p.Body, binders, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return p, nil
}
