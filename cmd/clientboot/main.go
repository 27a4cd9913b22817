// Package main is the entry point for the clientboot server.
// It loads configuration, connects to services, wires the deploy unit into
// the page handlers, and starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"clientboot/internal/cache"
	"clientboot/internal/config"
	"clientboot/internal/database"
	"clientboot/internal/deploy"
	"clientboot/internal/handlers"
	"clientboot/internal/middleware"
	"clientboot/internal/render"
	"clientboot/internal/router"
	"clientboot/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"loader_version", cfg.LoaderVersion,
		"langs", cfg.SupportedLangs,
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := store.Seed(context.Background(), db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)
	configCache, err := cache.NewTieredConfigCache(context.Background(),
		cache.NewConfigCache(valkeyClient, cache.DefaultConfigTTL), cache.DefaultLocalConfigTTL)
	if err != nil {
		slog.Error("failed to create config cache", "error", err)
		os.Exit(1)
	}
	defer configCache.Close()

	// Configs and routes may have changed since the last run; every cached
	// page embeds both.
	startup, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	configCache.InvalidateAll(startup)
	pageCache.InvalidateAll(startup)
	cancel()

	resources := store.NewResources(store.NewAppConfigStore(db), configCache, cfg.AppGroupDefaults())
	deployer := deploy.New(resources, store.NewRouteStore(db), cfg.LoaderDefaults())

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize page renderer", "error", err)
		os.Exit(1)
	}

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	publicHandlers := handlers.NewPublic(store.NewPageStore(db), deployer, renderer, pageCache, metrics)

	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Error("invalid TRUSTED_PROXIES", "error", err)
		os.Exit(1)
	}
	opts := router.Options{
		SupportedLangs: cfg.SupportedLangs,
		Environment:    cfg.Env,
		TrustedProxies: trusted,
	}
	if cfg.RateLimit > 0 {
		opts.Limiter = cache.NewRateCounter(valkeyClient, cfg.RateLimit, time.Minute)
	}
	r := router.New(publicHandlers, metrics, prometheus.DefaultGatherer, opts)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
