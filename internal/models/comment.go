// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"commonroom/internal/markup"
	"commonroom/internal/mention"
)

// MinCommentContentLen is the minimum visible-rune count for comments.
const MinCommentContentLen = 1

// Comment belongs to a post and may reply to one top-level comment.
// Thread depth is capped at two levels; the reply-target rules are enforced
// by the orchestrator, which can see the parent's state.
type Comment struct {
	ID           uuid.UUID  `json:"id"`
	PostID       uuid.UUID  `json:"post_id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	Content      string     `json:"content"`
	Mentions     []string   `json:"mentions"` // Derived from content, not authoritative
	LikeCount    int        `json:"like_count"`
	HelpfulCount int        `json:"helpful_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// NewComment creates a comment after validating its content. Mentions are
// extracted immediately.
func NewComment(id, postID, authorID uuid.UUID, parentID *uuid.UUID, content string, now time.Time) (*Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	return &Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   content,
		Mentions:  mention.Extract(content),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsArchived returns true if the comment has been soft-deleted.
func (c *Comment) IsArchived() bool { return c.DeletedAt != nil }

// IsReply returns true if the comment targets another comment rather than
// the post itself.
func (c *Comment) IsReply() bool { return c.ParentID != nil }

// Update replaces the comment's content. Updating an archived comment is a
// state conflict. Mentions are re-extracted.
func (c *Comment) Update(content string, now time.Time) error {
	if c.IsArchived() {
		return ErrArchived
	}
	if err := validateCommentContent(content); err != nil {
		return err
	}

	c.Content = content
	c.Mentions = mention.Extract(content)
	c.UpdatedAt = now
	return nil
}

// AddLike increments the like counter.
func (c *Comment) AddLike() { c.LikeCount++ }

// AddHelpful increments the helpful counter.
func (c *Comment) AddHelpful() { c.HelpfulCount++ }

// Archive soft-deletes the comment.
func (c *Comment) Archive(now time.Time) error {
	if c.IsArchived() {
		return ErrAlreadyArchived
	}
	c.DeletedAt = &now
	return nil
}

// Restore reverses a soft delete.
func (c *Comment) Restore() error {
	if !c.IsArchived() {
		return ErrNotArchived
	}
	c.DeletedAt = nil
	return nil
}

// Snapshot returns an immutable version record of the comment's current
// content. The caller supplies the next sequential version number.
func (c *Comment) Snapshot(id uuid.UUID, version int, now time.Time) (*ContentVersion, error) {
	return NewContentVersion(id, CommentRef(c.ID), c.Content, version, now)
}

// validateCommentContent checks the visible-text length of comment content.
func validateCommentContent(content string) error {
	if markup.TextLength(content) < MinCommentContentLen {
		return fmt.Errorf("comment content must not be empty: %w", ErrValidation)
	}
	return nil
}
