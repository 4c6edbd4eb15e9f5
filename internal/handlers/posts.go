// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"commonroom/internal/models"
	"commonroom/internal/service"
)

// Posts groups the post endpoints.
type Posts struct {
	svc *service.Service
}

// NewPosts creates the post handler group.
func NewPosts(svc *service.Service) *Posts {
	return &Posts{svc: svc}
}

type createPostRequest struct {
	CommunityID uuid.UUID `json:"community_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
}

// Create handles POST /posts.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.svc.CreatePost(r.Context(), service.CreatePostInput{
		CommunityID: req.CommunityID,
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Get handles GET /posts/{postID}.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "postID")
	if !ok {
		return
	}
	post, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// ListByCommunity handles GET /communities/{communityID}/posts.
func (h *Posts) ListByCommunity(w http.ResponseWriter, r *http.Request) {
	communityID, ok := uuidParam(w, r, "communityID")
	if !ok {
		return
	}
	posts, err := h.svc.ListPosts(r.Context(), communityID)
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Update handles PATCH /posts/{postID}.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "postID")
	if !ok {
		return
	}
	var req updatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), id, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// transition wraps the single-id state transition endpoints.
func (h *Posts) transition(op func(r *http.Request, id uuid.UUID) (*models.Post, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "postID")
		if !ok {
			return
		}
		post, err := op(r, id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, post)
	}
}

// Publish handles POST /posts/{postID}/publish.
func (h *Posts) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.PublishPost(r.Context(), id)
	})(w, r)
}

// Pin handles POST /posts/{postID}/pin.
func (h *Posts) Pin(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.PinPost(r.Context(), id)
	})(w, r)
}

// Unpin handles DELETE /posts/{postID}/pin.
func (h *Posts) Unpin(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.UnpinPost(r.Context(), id)
	})(w, r)
}

// Solve handles POST /posts/{postID}/solve.
func (h *Posts) Solve(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.SolvePost(r.Context(), id)
	})(w, r)
}

// Unsolve handles DELETE /posts/{postID}/solve.
func (h *Posts) Unsolve(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.UnsolvePost(r.Context(), id)
	})(w, r)
}

// Archive handles DELETE /posts/{postID}.
func (h *Posts) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.ArchivePost(r.Context(), id)
	})(w, r)
}

// Restore handles POST /posts/{postID}/restore.
func (h *Posts) Restore(w http.ResponseWriter, r *http.Request) {
	h.transition(func(r *http.Request, id uuid.UUID) (*models.Post, error) {
		return h.svc.RestorePost(r.Context(), id)
	})(w, r)
}

// counter wraps the fire-and-forget counter endpoints.
func (h *Posts) counter(op func(r *http.Request, id uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "postID")
		if !ok {
			return
		}
		if err := op(r, id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

// Like handles POST /posts/{postID}/like.
func (h *Posts) Like(w http.ResponseWriter, r *http.Request) {
	h.counter(func(r *http.Request, id uuid.UUID) error {
		return h.svc.LikePost(r.Context(), id)
	})(w, r)
}

// Helpful handles POST /posts/{postID}/helpful.
func (h *Posts) Helpful(w http.ResponseWriter, r *http.Request) {
	h.counter(func(r *http.Request, id uuid.UUID) error {
		return h.svc.MarkPostHelpful(r.Context(), id)
	})(w, r)
}

// View handles POST /posts/{postID}/view.
func (h *Posts) View(w http.ResponseWriter, r *http.Request) {
	h.counter(func(r *http.Request, id uuid.UUID) error {
		return h.svc.RecordPostView(r.Context(), id)
	})(w, r)
}

// Versions handles GET /posts/{postID}/versions.
func (h *Posts) Versions(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "postID")
	if !ok {
		return
	}
	versions, err := h.svc.PostVersions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if versions == nil {
		versions = []*models.ContentVersion{}
	}
	respondJSON(w, http.StatusOK, versions)
}
