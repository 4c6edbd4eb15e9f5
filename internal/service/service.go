// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service orchestrates the content lifecycle: post and comment
// use cases, version snapshots, and the detached notification fan-out.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"commonroom/internal/metrics"
	"commonroom/internal/models"
	"commonroom/internal/notify"
)

// PostStore is the post persistence surface the service needs.
type PostStore interface {
	Create(p *models.Post) error
	FindByID(id uuid.UUID) (*models.Post, error)
	FindByIDAny(id uuid.UUID) (*models.Post, error)
	ListByCommunity(communityID uuid.UUID) ([]*models.Post, error)
	Update(p *models.Post) error
	IncrementLike(id uuid.UUID) error
	IncrementHelpful(id uuid.UUID) error
	IncrementView(id uuid.UUID) error
	IncrementComments(id uuid.UUID) error
	DecrementComments(id uuid.UUID) error
}

// CommentStore is the comment persistence surface the service needs.
type CommentStore interface {
	Create(c *models.Comment) error
	FindByID(id uuid.UUID) (*models.Comment, error)
	FindByIDAny(id uuid.UUID) (*models.Comment, error)
	ListByPost(postID uuid.UUID) ([]*models.Comment, error)
	Update(c *models.Comment) error
	IncrementLike(id uuid.UUID) error
	IncrementHelpful(id uuid.UUID) error
}

// VersionStore persists append-only content snapshots.
type VersionStore interface {
	Create(v *models.ContentVersion) error
	ListByRef(ref models.ContentRef) ([]*models.ContentVersion, error)
	CountByRef(ref models.ContentRef) (int, error)
}

// NotificationStore is the notification persistence surface.
type NotificationStore interface {
	Create(n *models.Notification) error
	FindByID(id uuid.UUID) (*models.Notification, error)
	ListByUser(userID uuid.UUID, limit int) ([]*models.Notification, error)
	UnreadCount(userID uuid.UUID) (int, error)
	MarkRead(id uuid.UUID, at time.Time) error
	MarkAllRead(userID uuid.UUID, at time.Time) error
	Archive(id uuid.UUID, at time.Time) error
}

// UserStore resolves authors, recipients, and actors.
type UserStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
}

// UnreadCounter caches per-user unread notification counts.
type UnreadCounter interface {
	Get(ctx context.Context, userID uuid.UUID) (int, bool, error)
	Set(ctx context.Context, userID uuid.UUID, count int) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// nopUnread is used when no cache is wired.
type nopUnread struct{}

func (nopUnread) Get(context.Context, uuid.UUID) (int, bool, error) { return 0, false, nil }
func (nopUnread) Set(context.Context, uuid.UUID, int) error         { return nil }
func (nopUnread) Invalidate(context.Context, uuid.UUID) error       { return nil }

// Deps carries everything the service needs. Mailer, Metrics, Unread, and
// Logger may be nil; no-op implementations are substituted.
type Deps struct {
	Posts         PostStore
	Comments      CommentStore
	Versions      VersionStore
	Notifications NotificationStore
	Users         UserStore
	Unread        UnreadCounter
	Mailer        notify.Mailer
	Metrics       metrics.Recorder
	Logger        *slog.Logger
}

// Service implements the content lifecycle use cases.
type Service struct {
	posts         PostStore
	comments      CommentStore
	versions      VersionStore
	notifications NotificationStore
	users         UserStore
	unread        UnreadCounter
	mailer        notify.Mailer
	metrics       metrics.Recorder
	log           *slog.Logger

	// Injection points for deterministic tests. spawn dispatches the
	// detached fan-out; the default runs it on its own goroutine.
	newID func() uuid.UUID
	now   func() time.Time
	spawn func(fn func())
}

// New builds a Service from its dependencies.
func New(d Deps) *Service {
	if d.Unread == nil {
		d.Unread = nopUnread{}
	}
	if d.Mailer == nil {
		d.Mailer = notify.NopMailer{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	return &Service{
		posts:         d.Posts,
		comments:      d.Comments,
		versions:      d.Versions,
		notifications: d.Notifications,
		users:         d.Users,
		unread:        d.Unread,
		mailer:        d.Mailer,
		metrics:       d.Metrics,
		log:           d.Logger,
		newID:         uuid.New,
		now:           func() time.Time { return time.Now().UTC() },
		spawn:         func(fn func()) { go fn() },
	}
}

// dispatch runs fn detached from the calling request. A panic inside a
// fan-out task must never reach the caller's goroutine.
func (s *Service) dispatch(task string, fn func()) {
	s.spawn(func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("fan-out panicked", "task", task, "panic", r)
				s.metrics.FanOutPanic()
			}
		}()
		fn()
	})
}
