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

// CreatePostInput carries the fields for a new draft post.
type CreatePostInput struct {
	CommunityID uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Content     string
}

// CreatePost validates and persists a new draft post, then dispatches the
// mention fan-out. The fan-out runs detached; its outcome never reaches
// the caller.
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	author, err := s.users.FindByID(in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	p, err := models.NewPost(s.newID(), in.CommunityID, in.AuthorID, in.Title, in.Content, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.posts.Create(p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.dispatch("post_created", func() { s.fanOutPostCreated(p) })
	return p, nil
}

// GetPost returns an active post by id.
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListPosts returns the active posts of a community, pinned first.
func (s *Service) ListPosts(ctx context.Context, communityID uuid.UUID) ([]*models.Post, error) {
	posts, err := s.posts.ListByCommunity(communityID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// UpdatePostInput carries a partial post edit. Nil fields are untouched.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// UpdatePost applies a partial edit. When the content changes, the
// pre-edit content is snapshotted as the next version before the edit is
// applied, so version 1 is always the original text.
func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	p, err := s.loadPost(id)
	if err != nil {
		return nil, err
	}

	var snap *models.ContentVersion
	if in.Content != nil && !p.IsArchived() {
		snap, err = s.snapshotPost(p)
		if err != nil {
			return nil, err
		}
	}

	if err := p.Update(in.Title, in.Content, s.now()); err != nil {
		return nil, err
	}
	if snap != nil {
		if err := s.versions.Create(snap); err != nil {
			return nil, fmt.Errorf("create version: %w", err)
		}
	}
	if err := s.posts.Update(p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// PublishPost moves a draft to published.
func (s *Service) PublishPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, func(p *models.Post) error { return p.Publish(s.now()) })
}

// PinPost pins a published post.
func (s *Service) PinPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, (*models.Post).Pin)
}

// UnpinPost removes the pin.
func (s *Service) UnpinPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, (*models.Post).Unpin)
}

// SolvePost marks a published post solved.
func (s *Service) SolvePost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, (*models.Post).MarkSolved)
}

// UnsolvePost clears the solved mark.
func (s *Service) UnsolvePost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, (*models.Post).MarkUnsolved)
}

// ArchivePost soft-deletes a post.
func (s *Service) ArchivePost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, func(p *models.Post) error { return p.Archive(s.now()) })
}

// RestorePost brings an archived post back.
func (s *Service) RestorePost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.transitionPost(id, (*models.Post).Restore)
}

// LikePost bumps the like counter.
func (s *Service) LikePost(ctx context.Context, id uuid.UUID) error {
	return s.bumpPost(id, s.posts.IncrementLike)
}

// MarkPostHelpful bumps the helpful counter.
func (s *Service) MarkPostHelpful(ctx context.Context, id uuid.UUID) error {
	return s.bumpPost(id, s.posts.IncrementHelpful)
}

// RecordPostView bumps the view counter.
func (s *Service) RecordPostView(ctx context.Context, id uuid.UUID) error {
	return s.bumpPost(id, s.posts.IncrementView)
}

// PostVersions returns the post's snapshot history, oldest first.
func (s *Service) PostVersions(ctx context.Context, id uuid.UUID) ([]*models.ContentVersion, error) {
	if _, err := s.loadPost(id); err != nil {
		return nil, err
	}
	versions, err := s.versions.ListByRef(models.PostRef(id))
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

// loadPost fetches a post regardless of archival so state transitions can
// report conflicts instead of a generic miss.
func (s *Service) loadPost(id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.FindByIDAny(id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) transitionPost(id uuid.UUID, transition func(*models.Post) error) (*models.Post, error) {
	p, err := s.loadPost(id)
	if err != nil {
		return nil, err
	}
	if err := transition(p); err != nil {
		return nil, err
	}
	if err := s.posts.Update(p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

func (s *Service) bumpPost(id uuid.UUID, bump func(uuid.UUID) error) error {
	p, err := s.posts.FindByID(id)
	if err != nil {
		return fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return ErrNotFound
	}
	if err := bump(id); err != nil {
		return fmt.Errorf("bump post counter: %w", err)
	}
	return nil
}

// snapshotPost captures the post's current content as the next sequential
// version. The count is read inside the same operation that mutates the
// content, so numbers stay gapless without a lock.
func (s *Service) snapshotPost(p *models.Post) (*models.ContentVersion, error) {
	count, err := s.versions.CountByRef(models.PostRef(p.ID))
	if err != nil {
		return nil, fmt.Errorf("count versions: %w", err)
	}
	snap, err := p.Snapshot(s.newID(), count+1, s.now())
	if err != nil {
		return nil, fmt.Errorf("snapshot post: %w", err)
	}
	return snap, nil
}
