package authfunc

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"xTube.com/pkg/metrics"
)

// Metrics 记录请求数与耗时，路由标签使用注册时的模板避免基数膨胀
func Metrics() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := string(c.Method())
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Response.StatusCode())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
