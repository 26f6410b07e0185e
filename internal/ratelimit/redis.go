package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter Redis 固定窗口限流器（多实例共享计数）
// INCR 原子自增；第一次命中时设置窗口 TTL，key 到期即窗口重置
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

var _ Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: "ratelimit:"}
}

func (l *RedisLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read rate limit window: %w", err)
	}
	if ttl < 0 {
		// TTL 丢失（如 INCR 与 PExpire 之间进程崩溃后遗留的 key）：补一个窗口
		ttl = window
		_ = l.client.PExpire(ctx, redisKey, window).Err()
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   int(count) <= limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

func (l *RedisLimiter) Remaining(ctx context.Context, key string, limit int) (int, error) {
	count, err := l.client.Get(ctx, l.prefix+key).Int()
	if err != nil {
		if err == redis.Nil {
			return limit, nil
		}
		return 0, fmt.Errorf("failed to read rate limit counter: %w", err)
	}
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
