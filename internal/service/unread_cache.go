package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCache keeps per-user unread totals in Redis so the badge count on
// every page load does not hit the messages table. It is strictly
// best-effort: a nil client or any Redis error falls through to the DB.
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUnreadCache(client *redis.Client, ttl time.Duration) *UnreadCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UnreadCache{client: client, ttl: ttl}
}

// Get returns (count, true) on a cache hit.
func (c *UnreadCache) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *UnreadCache) Set(ctx context.Context, userID string, count int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, unreadKey(userID), count, c.ttl).Err()
}

// Invalidate drops the cached total after any send or mark-read.
func (c *UnreadCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, unreadKey(userID)).Err()
}

func unreadKey(userID string) string { return fmt.Sprintf("unread:total:%s", userID) }
