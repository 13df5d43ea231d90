package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// NotificationCache keeps per-user unread counters so the list endpoint does
// not hit Postgres for the badge on every poll. Every notification write must
// invalidate the owner's entry.
type NotificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNotificationCache(client *redis.Client, ttl time.Duration) *NotificationCache {
	return &NotificationCache{client: client, ttl: ttl}
}

func unreadKey(userID int64) string {
	return "notifications:unread:" + strconv.FormatInt(userID, 10)
}

func (c *NotificationCache) GetUnread(ctx context.Context, userID int64) (int64, bool) {
	val, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return val, true
}

func (c *NotificationCache) SetUnread(ctx context.Context, userID, count int64) error {
	return c.client.Set(ctx, unreadKey(userID), count, c.ttl).Err()
}

func (c *NotificationCache) Invalidate(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

// ScanLock is the reminder scan's single-flight guard. SetNX with a TTL keeps
// the scheduled tick and an on-demand admin trigger from overlapping, across
// server instances as well.
type ScanLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewScanLock(client *redis.Client, ttl time.Duration) *ScanLock {
	return &ScanLock{client: client, key: "reminder_scan:lock", ttl: ttl}
}

func (l *ScanLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, time.Now().Unix(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire scan lock: %w", err)
	}
	return ok, nil
}

func (l *ScanLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}
