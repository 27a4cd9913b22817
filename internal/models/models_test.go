// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"testing"

	"clientboot/internal/deploy"
)

func TestAppConfigMatches(t *testing.T) {
	ctx := deploy.Context{"runtime": "client", "lang": "de-DE"}

	tests := []struct {
		name     string
		settings []string
		want     bool
	}{
		{"master section", nil, true},
		{"single match", []string{"runtime:client"}, true},
		{"all match", []string{"runtime:client", "lang:de-DE"}, true},
		{"one mismatch", []string{"runtime:client", "lang:en-US"}, false},
		{"unknown dimension", []string{"device:iphone"}, false},
		{"malformed selector", []string{"runtime"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &AppConfig{Settings: tc.settings}
			if got := a.Matches(ctx); got != tc.want {
				t.Errorf("Matches(%v) = %v, want %v", tc.settings, got, tc.want)
			}
			if a.Specificity() != len(tc.settings) {
				t.Errorf("Specificity() = %d, want %d", a.Specificity(), len(tc.settings))
			}
		})
	}
}

func TestPageBinderMap(t *testing.T) {
	p := &Page{
		Binders: []PageBinder{
			{ViewID: "header", Name: "HeaderBinderIndex", Type: "Header"},
			{ViewID: "body", Name: "BodyBinderIndex", Config: map[string]any{"x": 1}},
			{Name: "Orphan"},
		},
	}

	m := p.BinderMap()
	if len(m) != 2 {
		t.Fatalf("len = %d, want 2", len(m))
	}
	if m["header"].Name != "HeaderBinderIndex" || m["header"].Type != "Header" {
		t.Errorf("header binder = %+v", m["header"])
	}
	if m["body"].Config["x"] != 1 {
		t.Errorf("body binder config = %v", m["body"].Config)
	}
}
