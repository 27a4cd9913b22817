// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"html"
	"html/template"
	"strings"

	"clientboot/internal/deploy"
)

// Asset is one entry added to a page by the deploy unit.
type Asset struct {
	Type     deploy.AssetType
	Position deploy.Position
	Content  string // URL for js/css, raw markup for blob
}

// Assets collects the assets of one page in the order they were added.
// It implements deploy.AssetSink.
type Assets struct {
	items []Asset
}

// AddAsset appends an asset.
func (a *Assets) AddAsset(typ deploy.AssetType, pos deploy.Position, content string) {
	a.items = append(a.items, Asset{Type: typ, Position: pos, Content: content})
}

// List returns the collected assets.
func (a *Assets) List() []Asset {
	return a.items
}

// Top renders the assets placed in <head>.
func (a *Assets) Top() template.HTML {
	return a.render(deploy.PositionTop)
}

// Bottom renders the assets placed at the end of <body>.
func (a *Assets) Bottom() template.HTML {
	return a.render(deploy.PositionBottom)
}

func (a *Assets) render(pos deploy.Position) template.HTML {
	if a == nil {
		return ""
	}
	var b strings.Builder
	for _, it := range a.items {
		if it.Position != pos {
			continue
		}
		switch it.Type {
		case deploy.AssetJS:
			b.WriteString(`<script type="text/javascript" src="` + html.EscapeString(it.Content) + `"></script>` + "\n")
		case deploy.AssetCSS:
			b.WriteString(`<link rel="stylesheet" type="text/css" href="` + html.EscapeString(it.Content) + `">` + "\n")
		case deploy.AssetBlob:
			// Blobs are markup produced by the server, e.g. the bootstrap script.
			b.WriteString(it.Content)
		}
	}
	return template.HTML(b.String())
}
