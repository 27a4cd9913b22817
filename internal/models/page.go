// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"clientboot/internal/deploy"
)

// Page is a server-rendered page that boots the client runtime. Each view
// placed on the page may bring a binder that the client must load.
type Page struct {
	ID        uuid.UUID    `json:"id"`
	Slug      string       `json:"slug"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Binders   []PageBinder `json:"binders"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// PageBinder is one view on a page and the binder deployed for it.
type PageBinder struct {
	ViewID string         `json:"view_id"`
	Name   string         `json:"name"`
	Type   string         `json:"type,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// BinderMap returns the page's binders keyed by view id. Views without
// an id are skipped.
func (p *Page) BinderMap() deploy.BinderMap {
	m := make(deploy.BinderMap, len(p.Binders))
	for _, b := range p.Binders {
		if b.ViewID == "" {
			continue
		}
		m[b.ViewID] = deploy.Binder{Name: b.Name, Type: b.Type, Config: b.Config}
	}
	return m
}
