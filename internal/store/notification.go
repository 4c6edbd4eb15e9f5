// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"commonroom/internal/models"
)

// notificationColumns lists all columns for notifications SELECTs.
const notificationColumns = `id, user_id, community_id, type, message, link_url,
	actor_id, actor_name, is_read, read_at, created_at, deleted_at`

// NotificationStore handles all notification-related database operations.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore creates a new NotificationStore with the given
// database connection.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// scanNotification scans a single notifications row into a Notification.
func scanNotification(scanner interface{ Scan(...any) error }) (*models.Notification, error) {
	var n models.Notification
	err := scanner.Scan(
		&n.ID, &n.UserID, &n.CommunityID, &n.Type, &n.Message, &n.LinkURL,
		&n.ActorID, &n.ActorName, &n.IsRead, &n.ReadAt, &n.CreatedAt, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new notification.
func (s *NotificationStore) Create(n *models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, user_id, community_id, type, message, link_url,
		                           actor_id, actor_name, is_read, read_at, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, n.ID, n.UserID, n.CommunityID, n.Type, n.Message, n.LinkURL,
		n.ActorID, n.ActorName, n.IsRead, n.ReadAt, n.CreatedAt, n.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// FindByID retrieves an active notification. Returns nil if not found or
// archived.
func (s *NotificationStore) FindByID(id uuid.UUID) (*models.Notification, error) {
	row := s.db.QueryRow(`
		SELECT `+notificationColumns+` FROM notifications
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find notification by id: %w", err)
	}
	return n, nil
}

// ListByUser returns a user's active notifications, newest first, capped at
// limit.
func (s *NotificationStore) ListByUser(userID uuid.UUID, limit int) ([]*models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// UnreadCount returns the number of unread, active notifications for a user.
func (s *NotificationStore) UnreadCount(userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND NOT is_read AND deleted_at IS NULL
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead records the unread-to-read transition for one notification.
// Already-read notifications keep their original read timestamp.
func (s *NotificationStore) MarkRead(id uuid.UUID, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE notifications SET is_read = TRUE, read_at = $2
		WHERE id = $1 AND NOT is_read AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread, active notification of a user as read.
func (s *NotificationStore) MarkAllRead(userID uuid.UUID, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE notifications SET is_read = TRUE, read_at = $2
		WHERE user_id = $1 AND NOT is_read AND deleted_at IS NULL
	`, userID, at)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Archive soft-deletes an active notification.
func (s *NotificationStore) Archive(id uuid.UUID, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE notifications SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return fmt.Errorf("archive notification: %w", err)
	}
	return nil
}
