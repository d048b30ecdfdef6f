// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/cache"
	"github.com/olegiv/sitekit/internal/config"
	"github.com/olegiv/sitekit/internal/handler/api"
	"github.com/olegiv/sitekit/internal/logging"
	"github.com/olegiv/sitekit/internal/metrics"
	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "sitekit - blog, portfolio and contact API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_JWT_SECRET      Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_DB_PATH         SQLite database path (default: ./data/sitekit.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_SERVER_PORT     Server port (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_CORS_ORIGINS    Comma-separated allowed origins\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_REDIS_URL       Redis URL for shared rate limits (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEKIT_DO_SEED         Insert demo blogs and projects (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("sitekit %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db.DB); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.SeedOptions{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		Demo:          cfg.DoSeed,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	counter, backend := cache.NewCounter(cache.CounterConfig{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.RedisPrefix,
	})
	defer func() { _ = counter.Close() }()
	slog.Info("rate limiting enabled", "backend", backend, "max", cfg.RateLimitMax, "window", cfg.RateLimitWindow)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	apiHandler := api.NewHandler(api.Config{
		DB:              db,
		Tokens:          auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		LoginProtection: loginProtection,
	})

	secHeaders := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	secHeaders.ExcludePaths = []string{"/metrics"}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer(cfg.IsDevelopment()))
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(middleware.SecurityHeaders(secHeaders))
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Mount("/api", apiHandler.Routes(middleware.RateLimit(counter, middleware.RateLimitConfig{
		Max:    cfg.RateLimitMax,
		Window: cfg.RateLimitWindow,
	})))
	r.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
