package outing

import (
	"context"
	"fmt"
	"time"

	"github.com/bricker/vivial-sub000/utils"

	"github.com/go-redis/redis/v8"
)

// RedisRerollLimiter caps rerolls per visitor inside a rolling window
// using an INCR counter with a TTL set on first use.
type RedisRerollLimiter struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
}

func NewRedisRerollLimiter(client *redis.Client, limit int, window time.Duration) *RedisRerollLimiter {
	return &RedisRerollLimiter{Client: client, Limit: limit, Window: window}
}

func (l *RedisRerollLimiter) Allow(ctx context.Context, visitorID string) (bool, error) {
	if visitorID == "" {
		return false, nil
	}
	key := utils.RerollCountPrefix + visitorID
	count, err := l.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment reroll count: %w", err)
	}
	if count == 1 {
		if err := l.Client.Expire(ctx, key, l.Window).Err(); err != nil {
			return false, fmt.Errorf("failed to set reroll window: %w", err)
		}
	}
	return count <= int64(l.Limit), nil
}
