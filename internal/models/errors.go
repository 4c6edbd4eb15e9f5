// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// ErrValidation is the base error for field validation failures. Specific
// failures wrap it with detail, so callers match the kind with errors.Is
// and surface the wrapped message to the user.
var ErrValidation = errors.New("validation failed")

// State-conflict errors. Each guarded transition fails with the sentinel
// matching the guard it violated, so callers can map conflicts to specific
// user-facing messages.
var (
	ErrArchived         = errors.New("content is archived")
	ErrAlreadyArchived  = errors.New("content is already archived")
	ErrNotArchived      = errors.New("content is not archived")
	ErrAlreadyPublished = errors.New("post is already published")
	ErrNotPublished     = errors.New("post is not published")
	ErrAlreadyPinned    = errors.New("post is already pinned")
	ErrNotPinned        = errors.New("post is not pinned")
	ErrAlreadySolved    = errors.New("post is already marked solved")
	ErrNotSolved        = errors.New("post is not marked solved")
)
