// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides the HTML shell pages are rendered into: the
// page body plus the assets the deploy unit collected for it.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData holds everything the page shell needs.
type PageData struct {
	Title  string
	Lang   string
	Body   template.HTML // trusted page markup from the page store
	Assets *Assets
}

// Renderer executes the page shell template.
type Renderer struct {
	page *template.Template
}

// New parses the embedded page shell.
func New() (*Renderer, error) {
	tmpl, err := template.New("page.html").ParseFS(templatesFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{page: tmpl}, nil
}

// Page renders a full page into a byte slice so it can be cached.
func (rn *Renderer) Page(data *PageData) ([]byte, error) {
	if data.Assets == nil {
		data.Assets = &Assets{}
	}
	var buf bytes.Buffer
	if err := rn.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
