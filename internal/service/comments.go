// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"commonroom/internal/models"
)

// CreateCommentInput carries the fields for a new comment. ParentID is
// nil for a top-level comment.
type CreateCommentInput struct {
	PostID   uuid.UUID
	AuthorID uuid.UUID
	ParentID *uuid.UUID
	Content  string
}

// CreateComment validates the reply target, persists the comment, bumps
// the owning post's comment counter, and dispatches the fan-out. Replies
// may only target a live top-level comment on the same post; each guard
// fails with its own error so callers can tell the cases apart.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	author, err := s.users.FindByID(in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	post, err := s.posts.FindByID(in.PostID)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	var parent *models.Comment
	if in.ParentID != nil {
		parent, err = s.comments.FindByIDAny(*in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("find parent: %w", err)
		}
		switch {
		case parent == nil, parent.PostID != in.PostID:
			return nil, ErrParentNotFound
		case parent.IsArchived():
			return nil, ErrParentArchived
		case parent.IsReply():
			return nil, ErrMaxDepthExceeded
		}
	}

	c, err := models.NewComment(s.newID(), in.PostID, in.AuthorID, in.ParentID, in.Content, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.comments.Create(c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := s.posts.IncrementComments(in.PostID); err != nil {
		s.log.Error("bump comment count failed", "post_id", in.PostID, "err", err)
	}

	s.dispatch("comment_created", func() { s.fanOutCommentCreated(c, post, parent) })
	return c, nil
}

// GetComment returns an active comment by id.
func (s *Service) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := s.comments.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// ListComments returns a post's active comments in creation order.
func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment replaces a comment's content. The pre-edit content is
// snapshotted as the next version before the edit lands.
func (s *Service) UpdateComment(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	c, err := s.loadComment(id)
	if err != nil {
		return nil, err
	}

	var snap *models.ContentVersion
	if !c.IsArchived() {
		snap, err = s.snapshotComment(c)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Update(content, s.now()); err != nil {
		return nil, err
	}
	if snap != nil {
		if err := s.versions.Create(snap); err != nil {
			return nil, fmt.Errorf("create version: %w", err)
		}
	}
	if err := s.comments.Update(c); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// ArchiveComment soft-deletes a comment and decrements the owning post's
// comment counter. The decrement floors at zero.
func (s *Service) ArchiveComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := s.loadComment(id)
	if err != nil {
		return nil, err
	}
	if err := c.Archive(s.now()); err != nil {
		return nil, err
	}
	if err := s.comments.Update(c); err != nil {
		return nil, fmt.Errorf("archive comment: %w", err)
	}
	if err := s.posts.DecrementComments(c.PostID); err != nil {
		s.log.Error("decrement comment count failed", "post_id", c.PostID, "err", err)
	}
	return c, nil
}

// RestoreComment brings an archived comment back and re-increments the
// owning post's comment counter.
func (s *Service) RestoreComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := s.loadComment(id)
	if err != nil {
		return nil, err
	}
	if err := c.Restore(); err != nil {
		return nil, err
	}
	if err := s.comments.Update(c); err != nil {
		return nil, fmt.Errorf("restore comment: %w", err)
	}
	if err := s.posts.IncrementComments(c.PostID); err != nil {
		s.log.Error("bump comment count failed", "post_id", c.PostID, "err", err)
	}
	return c, nil
}

// LikeComment bumps the like counter.
func (s *Service) LikeComment(ctx context.Context, id uuid.UUID) error {
	return s.bumpComment(id, s.comments.IncrementLike)
}

// MarkCommentHelpful bumps the helpful counter.
func (s *Service) MarkCommentHelpful(ctx context.Context, id uuid.UUID) error {
	return s.bumpComment(id, s.comments.IncrementHelpful)
}

// CommentVersions returns the comment's snapshot history, oldest first.
func (s *Service) CommentVersions(ctx context.Context, id uuid.UUID) ([]*models.ContentVersion, error) {
	if _, err := s.loadComment(id); err != nil {
		return nil, err
	}
	versions, err := s.versions.ListByRef(models.CommentRef(id))
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

func (s *Service) loadComment(id uuid.UUID) (*models.Comment, error) {
	c, err := s.comments.FindByIDAny(id)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) bumpComment(id uuid.UUID, bump func(uuid.UUID) error) error {
	c, err := s.comments.FindByID(id)
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}
	if c == nil {
		return ErrNotFound
	}
	if err := bump(id); err != nil {
		return fmt.Errorf("bump comment counter: %w", err)
	}
	return nil
}

func (s *Service) snapshotComment(c *models.Comment) (*models.ContentVersion, error) {
	count, err := s.versions.CountByRef(models.CommentRef(c.ID))
	if err != nil {
		return nil, fmt.Errorf("count versions: %w", err)
	}
	snap, err := c.Snapshot(s.newID(), count+1, s.now())
	if err != nil {
		return nil, fmt.Errorf("snapshot comment: %w", err)
	}
	return snap, nil
}
