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

// Comments groups the comment endpoints.
type Comments struct {
	svc *service.Service
}

// NewComments creates the comment handler group.
func NewComments(svc *service.Service) *Comments {
	return &Comments{svc: svc}
}

type createCommentRequest struct {
	AuthorID uuid.UUID  `json:"author_id"`
	ParentID *uuid.UUID `json:"parent_id"`
	Content  string     `json:"content"`
}

// Create handles POST /posts/{postID}/comments.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := uuidParam(w, r, "postID")
	if !ok {
		return
	}
	var req createCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), service.CreateCommentInput{
		PostID:   postID,
		AuthorID: req.AuthorID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// List handles GET /posts/{postID}/comments.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := uuidParam(w, r, "postID")
	if !ok {
		return
	}
	comments, err := h.svc.ListComments(r.Context(), postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

// Get handles GET /comments/{commentID}.
func (h *Comments) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	comment, err := h.svc.GetComment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// Update handles PATCH /comments/{commentID}.
func (h *Comments) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	var req updateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), id, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// Archive handles DELETE /comments/{commentID}.
func (h *Comments) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	comment, err := h.svc.ArchiveComment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// Restore handles POST /comments/{commentID}/restore.
func (h *Comments) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	comment, err := h.svc.RestoreComment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// Like handles POST /comments/{commentID}/like.
func (h *Comments) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	if err := h.svc.LikeComment(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Helpful handles POST /comments/{commentID}/helpful.
func (h *Comments) Helpful(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	if err := h.svc.MarkCommentHelpful(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Versions handles GET /comments/{commentID}/versions.
func (h *Comments) Versions(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}
	versions, err := h.svc.CommentVersions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if versions == nil {
		versions = []*models.ContentVersion{}
	}
	respondJSON(w, http.StatusOK, versions)
}
