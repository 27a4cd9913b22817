// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and the middleware chain.
package router

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clientboot/internal/handlers"
	"clientboot/internal/middleware"
)

// Options configures the page routes.
type Options struct {
	SupportedLangs []string
	Environment    string
	Limiter        middleware.Limiter // nil disables rate limiting
	TrustedProxies []netip.Prefix     // peers whose forwarding headers are believed
}

// New creates the chi router. Metrics are served from gatherer, which is
// normally the registry metrics was registered on.
func New(public *handlers.Public, metrics *middleware.Metrics, gatherer prometheus.Gatherer, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.Middleware)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Pages boot the client runtime, so they need the execution context.
	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(middleware.RateLimit(opts.Limiter, opts.TrustedProxies))
		}
		r.Use(middleware.RuntimeContext(opts.SupportedLangs, opts.Environment))
		r.Get("/", public.Homepage)
		r.Get("/{slug}", public.Page)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
