// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Commonroom API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"commonroom/internal/cache"
	"commonroom/internal/config"
	"commonroom/internal/database"
	"commonroom/internal/handlers"
	"commonroom/internal/metrics"
	"commonroom/internal/middleware"
	"commonroom/internal/notify"
	"commonroom/internal/router"
	"commonroom/internal/service"
	"commonroom/internal/store"
)

func main() {
	// Structured logger used by every package through the default slog.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the unread notification counter cache.
	// The server works without it; counts just hit Postgres every time.
	var unread service.UnreadCounter
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, unread counts served from database", "error", err)
	} else {
		defer valkeyClient.Close()
		unread = cache.NewUnreadCache(valkeyClient, cache.DefaultUnreadTTL)
	}

	// Notification email goes through SMTP when a relay is configured.
	var mailer notify.Mailer = notify.NopMailer{}
	if cfg.SMTPHost != "" {
		port, err := strconv.Atoi(cfg.SMTPPort)
		if err != nil {
			slog.Error("invalid SMTP_PORT", "value", cfg.SMTPPort)
			os.Exit(1)
		}
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		slog.Info("smtp mailer configured", "host", cfg.SMTPHost, "from", cfg.SMTPFrom)
	} else {
		slog.Warn("smtp not configured, notification email disabled")
	}

	// Prometheus registry and the notification pipeline collector.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Wire the service over the data stores.
	svc := service.New(service.Deps{
		Posts:         store.NewPostStore(db),
		Comments:      store.NewCommentStore(db),
		Versions:      store.NewVersionStore(db),
		Notifications: store.NewNotificationStore(db),
		Users:         store.NewUserStore(db),
		Unread:        unread,
		Mailer:        mailer,
		Metrics:       collector,
		Logger:        logger,
	})

	// Per-IP rate limiting.
	limiter := middleware.NewRateLimiter(float64(cfg.RateLimit), cfg.RateBurst)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(
		handlers.NewPosts(svc),
		handlers.NewComments(svc),
		handlers.NewNotifications(svc),
		limiter,
		registry,
	)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
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

	// Give active requests up to 30 seconds to complete. In-flight
	// notification fan-out is fire-and-forget and is not drained.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
