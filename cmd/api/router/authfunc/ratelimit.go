package authfunc

import (
	"context"
	"math"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/metrics"
	"xTube.com/pkg/security"
)

// RateLimit 按客户端 IP 限流；limiter 为 nil 或 Redis 不可用时放行
func RateLimit(limiter security.RateLimiter, scope string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if limiter == nil {
			c.Next(ctx)
			return
		}
		res, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter %s unavailable, allowing request: %v", scope, err)
			c.Next(ctx)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		if !res.Allowed {
			metrics.RateLimited.WithLabelValues(scope).Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			pack.SendError(c, errno.RateLimitErr)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
