// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import "errors"

// Enumerated service errors. Transports map these to status codes with
// errors.Is; anything else is an internal error.
var (
	// ErrNotFound marks a missing post, comment, version, or notification.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound marks an author or recipient id with no user row.
	ErrUserNotFound = errors.New("user not found")
	// ErrParentNotFound marks a reply whose parent comment does not exist
	// or belongs to a different post.
	ErrParentNotFound = errors.New("parent comment not found")
	// ErrParentArchived marks a reply to an archived parent comment.
	ErrParentArchived = errors.New("parent comment is archived")
	// ErrMaxDepthExceeded marks a reply to a comment that is itself a
	// reply. Threads are capped at two levels.
	ErrMaxDepthExceeded = errors.New("max thread depth exceeded")
)
