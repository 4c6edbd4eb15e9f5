// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL-backed persistence for the community
// content and notification entities. Find operations exclude archived rows
// unless the method name says otherwise.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"commonroom/internal/models"
)

// postColumns lists all columns for posts SELECTs.
const postColumns = `id, community_id, author_id, title, content, mentions,
	is_pinned, is_solved, like_count, helpful_count, comment_count, view_count,
	created_at, updated_at, published_at, deleted_at`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost scans a single posts row into a Post.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var mentions []byte
	err := scanner.Scan(
		&p.ID, &p.CommunityID, &p.AuthorID, &p.Title, &p.Content, &mentions,
		&p.IsPinned, &p.IsSolved, &p.LikeCount, &p.HelpfulCount, &p.CommentCount,
		&p.ViewCount, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := jsonUnmarshalMentions(mentions, &p.Mentions); err != nil {
		return nil, err
	}
	return &p, nil
}

// jsonUnmarshalMentions decodes the jsonb mentions column.
func jsonUnmarshalMentions(raw []byte, dst *[]string) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode mentions: %w", err)
	}
	return nil
}

// mentionsJSON encodes a mention list for the jsonb column. A nil slice is
// stored as an empty array so round-trips stay stable.
func mentionsJSON(mentions []string) ([]byte, error) {
	if mentions == nil {
		mentions = []string{}
	}
	return json.Marshal(mentions)
}

// Create inserts a new post.
func (s *PostStore) Create(p *models.Post) error {
	mentions, err := mentionsJSON(p.Mentions)
	if err != nil {
		return fmt.Errorf("encode mentions: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO posts (id, community_id, author_id, title, content, mentions,
		                   is_pinned, is_solved, like_count, helpful_count,
		                   comment_count, view_count, created_at, updated_at,
		                   published_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, p.ID, p.CommunityID, p.AuthorID, p.Title, p.Content, mentions,
		p.IsPinned, p.IsSolved, p.LikeCount, p.HelpfulCount,
		p.CommentCount, p.ViewCount, p.CreatedAt, p.UpdatedAt,
		p.PublishedAt, p.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindByID retrieves an active post by its UUID. Returns nil if not found
// or archived.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE id = $1 AND deleted_at IS NULL
	`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindByIDAny retrieves a post regardless of archive state. Used by restore
// and by callers that must distinguish "missing" from "archived".
func (s *PostStore) FindByIDAny(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE id = $1
	`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id any: %w", err)
	}
	return p, nil
}

// ListByCommunity returns active posts in a community, pinned posts first,
// then newest first.
func (s *PostStore) ListByCommunity(communityID uuid.UUID) ([]*models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE community_id = $1 AND deleted_at IS NULL
		ORDER BY is_pinned DESC, created_at DESC
	`, communityID)
	if err != nil {
		return nil, fmt.Errorf("list posts by community: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update persists the mutable fields of a post.
func (s *PostStore) Update(p *models.Post) error {
	mentions, err := mentionsJSON(p.Mentions)
	if err != nil {
		return fmt.Errorf("encode mentions: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			title = $1, content = $2, mentions = $3, is_pinned = $4, is_solved = $5,
			like_count = $6, helpful_count = $7, comment_count = $8, view_count = $9,
			updated_at = $10, published_at = $11, deleted_at = $12
		WHERE id = $13
	`, p.Title, p.Content, mentions, p.IsPinned, p.IsSolved,
		p.LikeCount, p.HelpfulCount, p.CommentCount, p.ViewCount,
		p.UpdatedAt, p.PublishedAt, p.DeletedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Archive soft-deletes an active post.
func (s *PostStore) Archive(id uuid.UUID, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE posts SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return fmt.Errorf("archive post: %w", err)
	}
	return nil
}

// Restore reverses a soft delete.
func (s *PostStore) Restore(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE posts SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL
	`, id)
	if err != nil {
		return fmt.Errorf("restore post: %w", err)
	}
	return nil
}

// IncrementLike bumps the like counter without a read-modify-write cycle.
func (s *PostStore) IncrementLike(id uuid.UUID) error {
	return s.bump(id, "like_count = like_count + 1")
}

// IncrementHelpful bumps the helpful counter.
func (s *PostStore) IncrementHelpful(id uuid.UUID) error {
	return s.bump(id, "helpful_count = helpful_count + 1")
}

// IncrementView bumps the view counter.
func (s *PostStore) IncrementView(id uuid.UUID) error {
	return s.bump(id, "view_count = view_count + 1")
}

// IncrementComments bumps the comment counter when a child comment is
// created.
func (s *PostStore) IncrementComments(id uuid.UUID) error {
	return s.bump(id, "comment_count = comment_count + 1")
}

// DecrementComments lowers the comment counter when a child comment is
// archived, flooring at zero.
func (s *PostStore) DecrementComments(id uuid.UUID) error {
	return s.bump(id, "comment_count = GREATEST(comment_count - 1, 0)")
}

// bump applies a counter expression to a single post row.
func (s *PostStore) bump(id uuid.UUID, expr string) error {
	_, err := s.db.Exec(`UPDATE posts SET `+expr+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bump post counter: %w", err)
	}
	return nil
}
