// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// Commonroom API server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"commonroom/internal/handlers"
	"commonroom/internal/metrics"
	"commonroom/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. gatherer may be nil to disable the
// /metrics endpoint; limiter may be nil to disable rate limiting.
func New(posts *handlers.Posts, comments *handlers.Comments, notifications *handlers.Notifications, limiter *middleware.RateLimiter, gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()

	// Middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	// Health check and metrics sit outside the API groups.
	r.Get("/health", healthHandler)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	}

	// Posts
	r.Route("/posts", func(r chi.Router) {
		r.Post("/", posts.Create)
		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", posts.Get)
			r.Patch("/", posts.Update)
			r.Delete("/", posts.Archive)
			r.Post("/restore", posts.Restore)
			r.Post("/publish", posts.Publish)
			r.Post("/pin", posts.Pin)
			r.Delete("/pin", posts.Unpin)
			r.Post("/solve", posts.Solve)
			r.Delete("/solve", posts.Unsolve)
			r.Post("/like", posts.Like)
			r.Post("/helpful", posts.Helpful)
			r.Post("/view", posts.View)
			r.Get("/versions", posts.Versions)

			// Comments nested under their post.
			r.Post("/comments", comments.Create)
			r.Get("/comments", comments.List)
		})
	})

	// Community post listings.
	r.Get("/communities/{communityID}/posts", posts.ListByCommunity)

	// Comments addressed directly.
	r.Route("/comments/{commentID}", func(r chi.Router) {
		r.Get("/", comments.Get)
		r.Patch("/", comments.Update)
		r.Delete("/", comments.Archive)
		r.Post("/restore", comments.Restore)
		r.Post("/like", comments.Like)
		r.Post("/helpful", comments.Helpful)
		r.Get("/versions", comments.Versions)
	})

	// Notifications.
	r.Route("/users/{userID}/notifications", func(r chi.Router) {
		r.Get("/", notifications.List)
		r.Get("/unread", notifications.UnreadCount)
		r.Post("/read", notifications.MarkAllRead)
	})
	r.Route("/notifications/{notificationID}", func(r chi.Router) {
		r.Post("/read", notifications.MarkRead)
		r.Delete("/", notifications.Archive)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
