// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// unread.go caches per-user unread notification counts in Valkey so the
// badge query on every page load avoids a COUNT against Postgres. Entries
// are invalidated whenever a notification is created, read, or archived.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// unreadKeyPrefix is the Valkey key prefix for unread counts.
	unreadKeyPrefix = "unread:"

	// DefaultUnreadTTL bounds staleness if an invalidation is ever lost.
	DefaultUnreadTTL = 10 * time.Minute
)

// UnreadCache stores unread notification counts keyed by user id.
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUnreadCache creates an unread counter cache backed by the given
// Valkey client.
func NewUnreadCache(client *redis.Client, ttl time.Duration) *UnreadCache {
	if ttl == 0 {
		ttl = DefaultUnreadTTL
	}
	return &UnreadCache{client: client, ttl: ttl}
}

func unreadKey(userID uuid.UUID) string {
	return unreadKeyPrefix + userID.String()
}

// Get returns the cached count and whether the entry was present.
func (uc *UnreadCache) Get(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	count, err := uc.client.Get(ctx, unreadKey(userID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("unread cache get: %w", err)
	}
	return count, true, nil
}

// Set stores a count with the configured TTL.
func (uc *UnreadCache) Set(ctx context.Context, userID uuid.UUID, count int) error {
	if err := uc.client.Set(ctx, unreadKey(userID), count, uc.ttl).Err(); err != nil {
		return fmt.Errorf("unread cache set: %w", err)
	}
	return nil
}

// Invalidate drops a user's cached count.
func (uc *UnreadCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := uc.client.Del(ctx, unreadKey(userID)).Err(); err != nil {
		return fmt.Errorf("unread cache invalidate: %w", err)
	}
	return nil
}
