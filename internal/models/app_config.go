// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"clientboot/internal/deploy"
)

// AppConfig is one section of the application configuration. Settings
// are "dimension:value" selectors ("runtime:client", "lang:de-DE"); a
// section with no settings is the master section and applies everywhere.
type AppConfig struct {
	ID       int64          `json:"id"`
	Settings []string       `json:"settings"`
	Config   map[string]any `json:"config"`
}

// Matches reports whether every selector of the section holds in c.
func (a *AppConfig) Matches(c deploy.Context) bool {
	for _, s := range a.Settings {
		dim, val, ok := strings.Cut(s, ":")
		if !ok || c[dim] != val {
			return false
		}
	}
	return true
}

// Specificity is the number of selectors. More specific sections are
// merged on top of less specific ones.
func (a *AppConfig) Specificity() int {
	return len(a.Settings)
}
