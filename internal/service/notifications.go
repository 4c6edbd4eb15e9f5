// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"commonroom/internal/markdown"
	"commonroom/internal/models"
	"commonroom/internal/notify"
)

// fanOutPostCreated notifies every user mentioned in a new post, skipping
// the author. Runs detached from the create request; each recipient is
// handled independently so one failure never starves the rest.
func (s *Service) fanOutPostCreated(p *models.Post) {
	link := postLink(p)
	for _, raw := range p.Mentions {
		userID, err := uuid.Parse(raw)
		if err != nil {
			s.log.Warn("skipping unparseable mention", "post_id", p.ID, "mention", raw)
			continue
		}
		if userID == p.AuthorID {
			continue
		}
		if err := s.createNotification(userID, p.CommunityID, models.NotificationMention,
			"%s mentioned you in a post", link, &p.AuthorID); err != nil {
			s.log.Error("mention notification failed",
				"post_id", p.ID, "recipient", userID, "err", err)
		}
	}
}

// fanOutCommentCreated notifies mentioned users first, then exactly one of
// the reply or comment-on-post branches. parent is non-nil only for
// replies; it was resolved by the create operation.
func (s *Service) fanOutCommentCreated(c *models.Comment, post *models.Post, parent *models.Comment) {
	link := commentLink(post, c)
	for _, raw := range c.Mentions {
		userID, err := uuid.Parse(raw)
		if err != nil {
			s.log.Warn("skipping unparseable mention", "comment_id", c.ID, "mention", raw)
			continue
		}
		if userID == c.AuthorID {
			continue
		}
		if err := s.createNotification(userID, post.CommunityID, models.NotificationMention,
			"%s mentioned you in a comment", link, &c.AuthorID); err != nil {
			s.log.Error("mention notification failed",
				"comment_id", c.ID, "recipient", userID, "err", err)
		}
	}

	switch {
	case parent != nil:
		if parent.AuthorID == c.AuthorID {
			return
		}
		if err := s.createNotification(parent.AuthorID, post.CommunityID, models.NotificationReply,
			"%s replied to your comment", link, &c.AuthorID); err != nil {
			s.log.Error("reply notification failed",
				"comment_id", c.ID, "recipient", parent.AuthorID, "err", err)
		}
	case post.AuthorID != c.AuthorID:
		if err := s.createNotification(post.AuthorID, post.CommunityID, models.NotificationCommentOnPost,
			"%s commented on your post", link, &c.AuthorID); err != nil {
			s.log.Error("comment notification failed",
				"comment_id", c.ID, "recipient", post.AuthorID, "err", err)
		}
	}
}

// createNotification validates the recipient, resolves the actor's display
// name, persists the notification, and attempts a best-effort email.
// messageFmt takes the actor's display name as its only verb. An actor id
// that resolves to nothing aborts this one notification.
func (s *Service) createNotification(recipientID, communityID uuid.UUID, typ models.NotificationType, messageFmt, link string, actorID *uuid.UUID) error {
	recipient, err := s.users.FindByID(recipientID)
	if err != nil {
		s.metrics.NotificationFailed(string(typ))
		return fmt.Errorf("resolve recipient: %w", err)
	}
	if recipient == nil {
		s.metrics.NotificationFailed(string(typ))
		return ErrUserNotFound
	}

	actorName := "Someone"
	if actorID != nil {
		actor, err := s.users.FindByID(*actorID)
		if err != nil {
			s.metrics.NotificationFailed(string(typ))
			return fmt.Errorf("resolve actor: %w", err)
		}
		if actor == nil {
			s.metrics.NotificationFailed(string(typ))
			return fmt.Errorf("actor %s: %w", *actorID, ErrUserNotFound)
		}
		actorName = actor.DisplayName
	}

	message := fmt.Sprintf(messageFmt, actorName)
	n, err := models.NewNotification(s.newID(), recipientID, communityID, typ, message, &link, actorID, s.now())
	if err != nil {
		s.metrics.NotificationFailed(string(typ))
		return err
	}
	if actorID != nil {
		n.ActorName = &actorName
	}

	if err := s.notifications.Create(n); err != nil {
		s.metrics.NotificationFailed(string(typ))
		return fmt.Errorf("persist notification: %w", err)
	}
	s.metrics.NotificationCreated(string(typ))

	if err := s.unread.Invalidate(context.Background(), recipientID); err != nil {
		s.log.Warn("unread cache invalidation failed", "user_id", recipientID, "err", err)
	}

	s.emailNotification(recipient, message, link)
	return nil
}

// emailNotification is fire and forget. Failures are logged and counted,
// never propagated.
func (s *Service) emailNotification(recipient *models.User, message, link string) {
	source := fmt.Sprintf("%s\n\nView it here: %s\n", message, link)
	body, err := markdown.ToHTML(source)
	if err != nil {
		s.log.Warn("render notification email failed", "user_id", recipient.ID, "err", err)
		s.metrics.EmailFailed()
		return
	}

	email := notify.Email{To: recipient.Email, Subject: message, Body: body}
	if err := s.mailer.Send(email); err != nil {
		s.log.Warn("notification email failed", "user_id", recipient.ID, "err", err)
		s.metrics.EmailFailed()
		return
	}
	s.metrics.EmailSent()
}

func postLink(p *models.Post) string {
	return fmt.Sprintf("/communities/%s/posts/%s", p.CommunityID, p.ID)
}

func commentLink(post *models.Post, c *models.Comment) string {
	return fmt.Sprintf("%s#comment-%s", postLink(post), c.ID)
}

// ListNotifications returns a user's latest active notifications.
func (s *Service) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	list, err := s.notifications.ListByUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

// UnreadNotificationCount returns the user's unread count, served from
// the cache when warm.
func (s *Service) UnreadNotificationCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if count, ok, err := s.unread.Get(ctx, userID); err == nil && ok {
		return count, nil
	} else if err != nil {
		s.log.Warn("unread cache read failed", "user_id", userID, "err", err)
	}

	count, err := s.notifications.UnreadCount(userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	if err := s.unread.Set(ctx, userID, count); err != nil {
		s.log.Warn("unread cache write failed", "user_id", userID, "err", err)
	}
	return count, nil
}

// MarkNotificationRead flips one notification to read. Reading an already
// read notification is a no-op.
func (s *Service) MarkNotificationRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	n, err := s.notifications.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find notification: %w", err)
	}
	if n == nil {
		return nil, ErrNotFound
	}
	if !n.IsRead {
		now := s.now()
		if err := s.notifications.MarkRead(id, now); err != nil {
			return nil, fmt.Errorf("mark read: %w", err)
		}
		n.MarkRead(now)
		if err := s.unread.Invalidate(ctx, n.UserID); err != nil {
			s.log.Warn("unread cache invalidation failed", "user_id", n.UserID, "err", err)
		}
	}
	return n, nil
}

// MarkAllNotificationsRead flips every unread notification for a user.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifications.MarkAllRead(userID, s.now()); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	if err := s.unread.Invalidate(ctx, userID); err != nil {
		s.log.Warn("unread cache invalidation failed", "user_id", userID, "err", err)
	}
	return nil
}

// ArchiveNotification soft-deletes a notification.
func (s *Service) ArchiveNotification(ctx context.Context, id uuid.UUID) error {
	n, err := s.notifications.FindByID(id)
	if err != nil {
		return fmt.Errorf("find notification: %w", err)
	}
	if n == nil {
		return ErrNotFound
	}
	if err := n.Archive(s.now()); err != nil {
		return err
	}
	if err := s.notifications.Archive(id, *n.DeletedAt); err != nil {
		return fmt.Errorf("archive notification: %w", err)
	}
	if err := s.unread.Invalidate(ctx, n.UserID); err != nil {
		s.log.Warn("unread cache invalidation failed", "user_id", n.UserID, "err", err)
	}
	return nil
}
