package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xtube_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "xtube_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Toggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xtube_toggles_total",
			Help: "Toggle outcomes by relation kind and resulting state.",
		},
		[]string{"kind", "state"},
	)

	CascadeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xtube_cascade_failures_total",
			Help: "Best-effort cleanup steps that failed.",
		},
		[]string{"step"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xtube_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
		[]string{"scope"},
	)
)

// ToggleState 翻转结果的标签值
func ToggleState(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
