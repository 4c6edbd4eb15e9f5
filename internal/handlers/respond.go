// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API over the service layer.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"commonroom/internal/models"
	"commonroom/internal/service"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "err", err)
	}
}

// respondError maps service and model errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrParentNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrParentArchived),
		errors.Is(err, service.ErrMaxDepthExceeded),
		errors.Is(err, models.ErrArchived),
		errors.Is(err, models.ErrAlreadyArchived),
		errors.Is(err, models.ErrNotArchived),
		errors.Is(err, models.ErrAlreadyPublished),
		errors.Is(err, models.ErrNotPublished),
		errors.Is(err, models.ErrAlreadyPinned),
		errors.Is(err, models.ErrNotPinned),
		errors.Is(err, models.ErrAlreadySolved),
		errors.Is(err, models.ErrNotSolved):
		status = http.StatusConflict
		message = err.Error()
	default:
		slog.Error("request failed", "err", err)
	}

	respondJSON(w, status, errorResponse{Error: message})
}

// uuidParam parses a UUID route parameter. A malformed id responds 400
// and returns false.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst. A malformed body
// responds 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
