// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentKind discriminates which entity a version snapshot belongs to.
type ContentKind string

const (
	ContentKindPost    ContentKind = "post"
	ContentKindComment ContentKind = "comment"
)

// ContentRef is a typed reference to a versionable entity. Pairing the kind
// and id in one value keeps post and comment ids from being confused.
type ContentRef struct {
	Kind ContentKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

// PostRef builds a reference to a post.
func PostRef(id uuid.UUID) ContentRef {
	return ContentRef{Kind: ContentKindPost, ID: id}
}

// CommentRef builds a reference to a comment.
func CommentRef(id uuid.UUID) ContentRef {
	return ContentRef{Kind: ContentKindComment, ID: id}
}

// ContentVersion is an immutable, numbered snapshot of content at a point
// in time. Versions are append-only audit artifacts: they are never updated,
// archived, or restored. Numbers for a given reference are assigned
// sequentially from 1 by the caller; the entity checks only that the number
// is positive and the content non-empty, since version creation happens
// inside the same operation that mutates the content.
type ContentVersion struct {
	ID        uuid.UUID  `json:"id"`
	Ref       ContentRef `json:"ref"`
	Content   string     `json:"content"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewContentVersion validates and creates a version snapshot.
func NewContentVersion(id uuid.UUID, ref ContentRef, content string, version int, now time.Time) (*ContentVersion, error) {
	if ref.Kind != ContentKindPost && ref.Kind != ContentKindComment {
		return nil, fmt.Errorf("unknown content kind %q: %w", ref.Kind, ErrValidation)
	}
	if ref.ID == uuid.Nil {
		return nil, fmt.Errorf("content reference id is required: %w", ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("version content must not be empty: %w", ErrValidation)
	}
	if version < 1 {
		return nil, fmt.Errorf("version number must be a positive integer: %w", ErrValidation)
	}

	return &ContentVersion{
		ID:        id,
		Ref:       ref,
		Content:   content,
		Version:   version,
		CreatedAt: now,
	}, nil
}
