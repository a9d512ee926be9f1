package middleware

import (
	"github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fast_note",
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the rate limiter.",
}, []string{"route"})

// RateLimiter 按路由令牌桶限流，未配置桶的路由不受限制
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		bucket, ok := l.GetBucket(key)
		if !ok || bucket.TakeAvailable(1) > 0 {
			c.Next()
			return
		}

		rateLimited.WithLabelValues(key).Inc()
		app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
		c.Abort()
	}
}
