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

// commentColumns lists all columns for comments SELECTs.
const commentColumns = `id, post_id, author_id, parent_id, content, mentions,
	like_count, helpful_count, created_at, updated_at, deleted_at`

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// scanComment scans a single comments row into a Comment.
func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	var mentions []byte
	err := scanner.Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.ParentID, &c.Content, &mentions,
		&c.LikeCount, &c.HelpfulCount, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := jsonUnmarshalMentions(mentions, &c.Mentions); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment.
func (s *CommentStore) Create(c *models.Comment) error {
	mentions, err := mentionsJSON(c.Mentions)
	if err != nil {
		return fmt.Errorf("encode mentions: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO comments (id, post_id, author_id, parent_id, content, mentions,
		                      like_count, helpful_count, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID, c.PostID, c.AuthorID, c.ParentID, c.Content, mentions,
		c.LikeCount, c.HelpfulCount, c.CreatedAt, c.UpdatedAt, c.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// FindByID retrieves an active comment by its UUID. Returns nil if not
// found or archived.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		SELECT `+commentColumns+` FROM comments WHERE id = $1 AND deleted_at IS NULL
	`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// FindByIDAny retrieves a comment regardless of archive state. The reply
// guards need it to distinguish a missing parent from an archived one.
func (s *CommentStore) FindByIDAny(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		SELECT `+commentColumns+` FROM comments WHERE id = $1
	`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id any: %w", err)
	}
	return c, nil
}

// ListByPost returns active comments on a post, oldest first.
func (s *CommentStore) ListByPost(postID uuid.UUID) ([]*models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Update persists the mutable fields of a comment.
func (s *CommentStore) Update(c *models.Comment) error {
	mentions, err := mentionsJSON(c.Mentions)
	if err != nil {
		return fmt.Errorf("encode mentions: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE comments SET
			content = $1, mentions = $2, like_count = $3, helpful_count = $4,
			updated_at = $5, deleted_at = $6
		WHERE id = $7
	`, c.Content, mentions, c.LikeCount, c.HelpfulCount,
		c.UpdatedAt, c.DeletedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Archive soft-deletes an active comment.
func (s *CommentStore) Archive(id uuid.UUID, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE comments SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return fmt.Errorf("archive comment: %w", err)
	}
	return nil
}

// Restore reverses a soft delete.
func (s *CommentStore) Restore(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE comments SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL
	`, id)
	if err != nil {
		return fmt.Errorf("restore comment: %w", err)
	}
	return nil
}

// IncrementLike bumps the like counter.
func (s *CommentStore) IncrementLike(id uuid.UUID) error {
	return s.bump(id, "like_count = like_count + 1")
}

// IncrementHelpful bumps the helpful counter.
func (s *CommentStore) IncrementHelpful(id uuid.UUID) error {
	return s.bump(id, "helpful_count = helpful_count + 1")
}

// bump applies a counter expression to a single comment row.
func (s *CommentStore) bump(id uuid.UUID, expr string) error {
	_, err := s.db.Exec(`UPDATE comments SET `+expr+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bump comment counter: %w", err)
	}
	return nil
}
