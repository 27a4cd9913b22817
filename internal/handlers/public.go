// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the pages that boot the client runtime.
package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clientboot/internal/cache"
	"clientboot/internal/deploy"
	"clientboot/internal/middleware"
	"clientboot/internal/models"
	"clientboot/internal/render"
	"clientboot/internal/slug"
	"clientboot/internal/store"
)

// homeSlug is the page served at "/".
const homeSlug = "home"

// PageFinder looks pages up by slug. A missing page is (nil, nil).
type PageFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.Page, error)
}

// RuntimeDeployer adds the client runtime assets of a page to a sink.
type RuntimeDeployer interface {
	ConstructClientRuntime(ctx context.Context, server deploy.Context, header deploy.HeaderGetter, sink deploy.AssetSink, binders deploy.BinderMap) error
}

// PageCache stores rendered pages.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// BootstrapObserver counts served bootstraps.
type BootstrapObserver interface {
	ObserveBootstrap(lang string, cached bool)
}

// Public groups the handlers of the public pages. Each page is rendered
// with the client runtime deployed for the request's execution context,
// and the result is cached per slug, context and path-to-root.
type Public struct {
	pages     PageFinder
	deployer  RuntimeDeployer
	renderer  *render.Renderer
	pageCache PageCache
	metrics   BootstrapObserver
}

// NewPublic creates the public handler group. pageCache and metrics may be nil.
func NewPublic(pages PageFinder, deployer RuntimeDeployer, renderer *render.Renderer, pageCache PageCache, metrics BootstrapObserver) *Public {
	return &Public{
		pages:     pages,
		deployer:  deployer,
		renderer:  renderer,
		pageCache: pageCache,
		metrics:   metrics,
	}
}

// Homepage renders the "home" page.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, homeSlug)
}

// Page renders the page named by the {slug} URL parameter.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	pageSlug := chi.URLParam(r, "slug")
	if !slug.Valid(pageSlug) {
		http.NotFound(w, r)
		return
	}
	p.serve(w, r, pageSlug)
}

func (p *Public) serve(w http.ResponseWriter, r *http.Request, pageSlug string) {
	ctx := r.Context()
	server := middleware.RuntimeContextFromCtx(ctx)
	if server == nil {
		server = deploy.Context{"runtime": "server"}
	}
	key := cache.PageKey(pageSlug, store.ContextKey(server), r.Header.Get(deploy.PathToRootHeader))

	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, key); ok {
			p.observe(server, true)
			writeHTML(w, cached)
			return
		}
	}

	page, err := p.pages.FindBySlug(ctx, pageSlug)
	if err != nil {
		slog.Error("find page failed", "error", err, "slug", pageSlug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil {
		http.NotFound(w, r)
		return
	}

	assets := &render.Assets{}
	if err := p.deployer.ConstructClientRuntime(ctx, server, r.Header, assets, page.BinderMap()); err != nil {
		slog.Error("deploy client runtime failed", "error", err, "slug", pageSlug, "request_id", middleware.RequestIDFromCtx(ctx))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rendered, err := p.renderer.Page(&render.PageData{
		Title:  page.Title,
		Lang:   server["lang"],
		Body:   template.HTML(page.Body),
		Assets: assets,
	})
	if err != nil {
		slog.Error("render page failed", "error", err, "slug", pageSlug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pageCache != nil {
		p.pageCache.Set(ctx, key, rendered)
	}
	p.observe(server, false)
	writeHTML(w, rendered)
}

func (p *Public) observe(c deploy.Context, cached bool) {
	if p.metrics != nil {
		p.metrics.ObserveBootstrap(c["lang"], cached)
	}
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
