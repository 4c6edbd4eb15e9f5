// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and owns the validation and state-transition rules for content entities.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"commonroom/internal/markup"
	"commonroom/internal/mention"
)

// Validation limits for post fields.
const (
	MinTitleLen       = 3
	MaxTitleLen       = 200
	MinPostContentLen = 10 // visible runes after markup stripping
)

// Post is a community post. A post is a draft until PublishedAt is set and
// active until DeletedAt is set; pin and solve flags require published
// state. Counters only grow, except CommentCount which may shrink once per
// archived child comment and never below zero.
type Post struct {
	ID           uuid.UUID  `json:"id"`
	CommunityID  uuid.UUID  `json:"community_id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Mentions     []string   `json:"mentions"` // Derived from content, not authoritative
	IsPinned     bool       `json:"is_pinned"`
	IsSolved     bool       `json:"is_solved"`
	LikeCount    int        `json:"like_count"`
	HelpfulCount int        `json:"helpful_count"`
	CommentCount int        `json:"comment_count"`
	ViewCount    int        `json:"view_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// NewPost creates a draft post after validating title and content.
// Mentions are extracted from the content immediately.
func NewPost(id, communityID, authorID uuid.UUID, title, content string, now time.Time) (*Post, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validatePostContent(content); err != nil {
		return nil, err
	}

	return &Post{
		ID:          id,
		CommunityID: communityID,
		AuthorID:    authorID,
		Title:       title,
		Content:     content,
		Mentions:    mention.Extract(content),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsArchived returns true if the post has been soft-deleted.
func (p *Post) IsArchived() bool { return p.DeletedAt != nil }

// IsPublished returns true once the post has left draft state.
func (p *Post) IsPublished() bool { return p.PublishedAt != nil }

// IsDraft returns true while the post has not been published.
func (p *Post) IsDraft() bool { return p.PublishedAt == nil }

// Update applies new field values. Nil arguments leave the corresponding
// field untouched; supplied fields are re-validated. Updating an archived
// post is a state conflict. Mentions are re-extracted whenever the content
// changes.
func (p *Post) Update(title, content *string, now time.Time) error {
	if p.IsArchived() {
		return ErrArchived
	}

	if title != nil {
		t, err := validateTitle(*title)
		if err != nil {
			return err
		}
		p.Title = t
	}
	if content != nil {
		if err := validatePostContent(*content); err != nil {
			return err
		}
		p.Content = *content
		p.Mentions = mention.Extract(*content)
	}

	p.UpdatedAt = now
	return nil
}

// Publish moves the post out of draft state. Title and content are
// re-validated as a final gate before the post becomes visible.
func (p *Post) Publish(now time.Time) error {
	if p.IsArchived() {
		return ErrArchived
	}
	if p.IsPublished() {
		return ErrAlreadyPublished
	}
	if _, err := validateTitle(p.Title); err != nil {
		return err
	}
	if err := validatePostContent(p.Content); err != nil {
		return err
	}

	p.PublishedAt = &now
	p.UpdatedAt = now
	return nil
}

// Pin marks a published post as pinned.
func (p *Post) Pin() error {
	if p.IsArchived() {
		return ErrArchived
	}
	if !p.IsPublished() {
		return ErrNotPublished
	}
	if p.IsPinned {
		return ErrAlreadyPinned
	}
	p.IsPinned = true
	return nil
}

// Unpin removes the pinned flag.
func (p *Post) Unpin() error {
	if p.IsArchived() {
		return ErrArchived
	}
	if !p.IsPinned {
		return ErrNotPinned
	}
	p.IsPinned = false
	return nil
}

// MarkSolved flags a published post as solved.
func (p *Post) MarkSolved() error {
	if p.IsArchived() {
		return ErrArchived
	}
	if !p.IsPublished() {
		return ErrNotPublished
	}
	if p.IsSolved {
		return ErrAlreadySolved
	}
	p.IsSolved = true
	return nil
}

// MarkUnsolved clears the solved flag.
func (p *Post) MarkUnsolved() error {
	if p.IsArchived() {
		return ErrArchived
	}
	if !p.IsSolved {
		return ErrNotSolved
	}
	p.IsSolved = false
	return nil
}

// AddLike increments the like counter.
func (p *Post) AddLike() { p.LikeCount++ }

// AddHelpful increments the helpful counter.
func (p *Post) AddHelpful() { p.HelpfulCount++ }

// AddView increments the view counter.
func (p *Post) AddView() { p.ViewCount++ }

// AddComment increments the comment counter.
func (p *Post) AddComment() { p.CommentCount++ }

// RemoveComment decrements the comment counter, flooring at zero. This is
// the only permitted counter decrement, used when a child comment is
// archived.
func (p *Post) RemoveComment() {
	if p.CommentCount > 0 {
		p.CommentCount--
	}
}

// Archive soft-deletes the post. Archiving an archived post is a state
// conflict.
func (p *Post) Archive(now time.Time) error {
	if p.IsArchived() {
		return ErrAlreadyArchived
	}
	p.DeletedAt = &now
	return nil
}

// Restore reverses a soft delete.
func (p *Post) Restore() error {
	if !p.IsArchived() {
		return ErrNotArchived
	}
	p.DeletedAt = nil
	return nil
}

// Snapshot returns an immutable version record of the post's current
// content. The caller supplies the next sequential version number.
func (p *Post) Snapshot(id uuid.UUID, version int, now time.Time) (*ContentVersion, error) {
	return NewContentVersion(id, PostRef(p.ID), p.Content, version, now)
}

// validateTitle trims the title and checks its length bounds.
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	n := utf8.RuneCountInString(title)
	if n < MinTitleLen || n > MaxTitleLen {
		return "", fmt.Errorf("title must be %d-%d characters: %w", MinTitleLen, MaxTitleLen, ErrValidation)
	}
	return title, nil
}

// validatePostContent checks the visible-text length of post content.
func validatePostContent(content string) error {
	if markup.TextLength(content) < MinPostContentLen {
		return fmt.Errorf("content must be at least %d characters: %w", MinPostContentLen, ErrValidation)
	}
	return nil
}
