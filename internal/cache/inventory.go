package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%s"
	postKeyPrefix = "post:%s"
)

// TTLs for cached records. Posts carry computed counters, so the TTL
// stays short to bound staleness between invalidations.
const (
	UserTTL = 5 * time.Minute
	PostTTL = 2 * time.Minute
)

// UserKey returns the cache key for a user record.
func UserKey(userID string) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// PostKey returns the cache key for a post record.
func PostKey(postID string) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// Invalidate removes a key; a nil client makes it a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes a cached user record.
func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost removes a cached post record.
func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID))
}
