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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/onav-go/internal/auth"
	"github.com/olegiv/onav-go/internal/config"
	"github.com/olegiv/onav-go/internal/handler/api"
	"github.com/olegiv/onav-go/internal/kv"
	"github.com/olegiv/onav-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oNav - Personal Navigation Site Manager\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_TOKEN_SECRET      Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_SERVER_HOST       Server host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_LOG_LEVEL         Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_REDIS_URL         Redis URL for persistent storage (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_KV_PREFIX         Redis key prefix (default: onav:)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_CORS_ORIGINS      Comma-separated allowed origins (default: *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_AUTH_RATE_LIMIT   Auth requests per second per IP, 0 disables (default: 1)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ONAV_AUTH_RATE_BURST   Auth request burst per IP (default: 5)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/olegiv/onav-go\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Initialize the key-value store
	store, err := kv.NewStore(kv.StoreConfig{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.KVPrefix,
	})
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()
	if cfg.UseRedis() {
		slog.Info("store initialized", "backend", "redis", "prefix", cfg.KVPrefix)
	} else {
		slog.Warn("store initialized", "backend", "memory", "note", "data is lost on restart, set ONAV_REDIS_URL for persistence")
	}

	// Build the API
	tokens := auth.NewTokenService([]byte(cfg.TokenSecret))
	apiHandler := api.NewHandler(store, tokens)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Mount("/", apiHandler.Routes(api.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		AuthRPS:        cfg.AuthRateLimit,
		AuthBurst:      cfg.AuthRateBurst,
	}))

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
