// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package deploy builds the HTML needed to start the client runtime in the
// browser: the seed scripts the page loads first and the inline bootstrap
// script carrying the loader and client configuration.
package deploy

import (
	"context"
	"fmt"
	"log/slog"
)

// PathToRootHeader lets a build tool (e.g. an offline/html5 app build)
// tell the client where the application root is.
const PathToRootHeader = "x-mojito-build-path-to-root"

// AssetType distinguishes script URLs from inline markup.
type AssetType string

// Position is where in the document an asset is placed.
type Position string

const (
	AssetJS   AssetType = "js"
	AssetCSS  AssetType = "css"
	AssetBlob AssetType = "blob"

	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// ResourceStore resolves application configuration for an execution context.
type ResourceStore interface {
	AppConfig(ctx context.Context, c Context) (map[string]any, error)
	AppGroupConfig(ctx context.Context, c Context) (GroupConfig, error)
	AppSeedFiles(ctx context.Context, c Context) ([]string, error)
}

// RouteMaker produces the route table shipped to the client.
type RouteMaker interface {
	ComputedRoutes(ctx context.Context) (any, error)
}

// HeaderGetter reads request headers. http.Header satisfies it.
type HeaderGetter interface {
	Get(key string) string
}

// AssetSink receives the assets the page has to include.
type AssetSink interface {
	AddAsset(typ AssetType, pos Position, content string)
}

// Deployer assembles the client runtime for a page.
type Deployer struct {
	store    ResourceStore
	routes   RouteMaker
	defaults LoaderDefaults
}

// New creates a Deployer with its collaborators.
func New(store ResourceStore, routes RouteMaker, defaults LoaderDefaults) *Deployer {
	return &Deployer{store: store, routes: routes, defaults: defaults}
}

// ConstructClientRuntime adds one top "js" asset per seed URL and then one
// bottom "blob" asset with the bootstrap script. Errors from the store or
// the route table are returned to the caller as they are; nothing is added
// to the sink in that case.
func (d *Deployer) ConstructClientRuntime(ctx context.Context, server Context, header HeaderGetter, sink AssetSink, binders BinderMap) error {
	client := server.Client()

	appConfig, err := d.store.AppConfig(ctx, client)
	if err != nil {
		return fmt.Errorf("resolve client app config: %w", err)
	}
	group, err := d.store.AppGroupConfig(ctx, client)
	if err != nil {
		return fmt.Errorf("resolve app group config: %w", err)
	}
	seeds, err := d.store.AppSeedFiles(ctx, client)
	if err != nil {
		return fmt.Errorf("resolve seed files: %w", err)
	}
	routes, err := d.routes.ComputedRoutes(ctx)
	if err != nil {
		return fmt.Errorf("compute routes: %w", err)
	}

	var pathToRoot string
	if header != nil {
		pathToRoot = header.Get(PathToRootHeader)
	}

	loader, clientConfig, err := Assemble(Input{
		Defaults:      d.defaults,
		AppConfig:     appConfig,
		AppGroup:      group,
		ServerContext: server,
		ClientContext: client,
		Binders:       binders,
		Routes:        routes,
		PathToRoot:    pathToRoot,
	})
	if err != nil {
		return err
	}

	loader, clientConfig = Sanitize(loader, clientConfig)
	modules := InitialModules(binders)

	script, err := BootstrapScript(loader, clientConfig, modules)
	if err != nil {
		return err
	}

	assets := SeedAssets(seeds, group)
	for _, a := range assets {
		sink.AddAsset(AssetJS, PositionTop, a)
	}
	sink.AddAsset(AssetBlob, PositionBottom, script)

	slog.Debug("client runtime constructed",
		"lang", server["lang"],
		"seeds", len(assets),
		"modules", len(modules),
	)
	return nil
}
