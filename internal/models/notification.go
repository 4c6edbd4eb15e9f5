// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationType enumerates the kinds of cross-user alerts.
type NotificationType string

const (
	NotificationMention       NotificationType = "mention"
	NotificationReply         NotificationType = "reply"
	NotificationCommentOnPost NotificationType = "comment_on_post"
	NotificationLike          NotificationType = "like"
	NotificationNewPost       NotificationType = "new_post"
	NotificationSystem        NotificationType = "system"
)

// validNotificationTypes is the closed set accepted by NewNotification.
var validNotificationTypes = map[NotificationType]struct{}{
	NotificationMention:       {},
	NotificationReply:         {},
	NotificationCommentOnPost: {},
	NotificationLike:          {},
	NotificationNewPost:       {},
	NotificationSystem:        {},
}

// Notification records a single alert to one user. It transitions only from
// unread to read, and from active to archived.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	CommunityID uuid.UUID        `json:"community_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	LinkURL     *string          `json:"link_url,omitempty"`
	ActorID     *uuid.UUID       `json:"actor_id,omitempty"`
	ActorName   *string          `json:"actor_name,omitempty"`
	IsRead      bool             `json:"is_read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	DeletedAt   *time.Time       `json:"deleted_at,omitempty"`
}

// NewNotification creates an unread notification after validating the
// recipient, community, type, and message.
func NewNotification(id, userID, communityID uuid.UUID, typ NotificationType, message string, linkURL *string, actorID *uuid.UUID, now time.Time) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("recipient user id is required: %w", ErrValidation)
	}
	if communityID == uuid.Nil {
		return nil, fmt.Errorf("community id is required: %w", ErrValidation)
	}
	if _, ok := validNotificationTypes[typ]; !ok {
		return nil, fmt.Errorf("unknown notification type %q: %w", typ, ErrValidation)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("notification message is required: %w", ErrValidation)
	}

	return &Notification{
		ID:          id,
		UserID:      userID,
		CommunityID: communityID,
		Type:        typ,
		Message:     message,
		LinkURL:     linkURL,
		ActorID:     actorID,
		CreatedAt:   now,
	}, nil
}

// IsArchived returns true if the notification has been soft-deleted.
func (n *Notification) IsArchived() bool { return n.DeletedAt != nil }

// MarkRead records the read transition. Marking an already-read
// notification is a no-op so repeated reads stay idempotent.
func (n *Notification) MarkRead(now time.Time) {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.ReadAt = &now
}

// Archive soft-deletes the notification.
func (n *Notification) Archive(now time.Time) error {
	if n.IsArchived() {
		return ErrAlreadyArchived
	}
	n.DeletedAt = &now
	return nil
}
