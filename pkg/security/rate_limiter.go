package security

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimiter 限流器
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int64         `json:"remaining"`
	RetryAfter time.Duration `json:"retry_after"`
}

// SlidingWindowLimiter 基于 Redis ZSET 的滑动窗口限流
type SlidingWindowLimiter struct {
	redis  redis.Cmdable
	prefix string
	window time.Duration
	max    int64
}

var _ RateLimiter = (*SlidingWindowLimiter)(nil)

// NewSlidingWindowLimiter 每个 key 在 window 内最多 max 次，被拒绝的请求不计入窗口
func NewSlidingWindowLimiter(client redis.Cmdable, prefix string, window time.Duration, max int64) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{redis: client, prefix: prefix, window: window, max: max}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)

	member := uuid.NewString()

	pipe := l.redis.TxPipeline()
	// 清理过期记录
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	// 添加当前请求
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: member,
	})
	// 计算当前窗口内的请求数
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	count := countCmd.Val()
	result := &RateLimitResult{
		Allowed:   count <= l.max,
		Remaining: l.max - count,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	if !result.Allowed {
		// 撤回本次记录，否则持续重试会不断延长封禁
		if err := l.redis.ZRem(ctx, redisKey, member).Err(); err != nil {
			return nil, err
		}
		result.RetryAfter = l.retryAfter(ctx, redisKey, now)
	}
	return result, nil
}

// retryAfter 窗口内最早一条记录过期所需的时间
func (l *SlidingWindowLimiter) retryAfter(ctx context.Context, redisKey string, now time.Time) time.Duration {
	oldest, err := l.redis.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		return l.window
	}
	wait := time.Unix(0, int64(oldest[0].Score)).Add(l.window).Sub(now)
	if wait <= 0 || wait > l.window {
		return l.window
	}
	return wait
}
