// Package limiter provides token-bucket rate limiting keyed by request
// Package limiter 提供按请求键划分的令牌桶限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// Limiter 保存所有令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 自定义键值对名称
	Key string
	// FillInterval 间隔多久时间放 N 个令牌
	FillInterval time.Duration
	// Capacity 令牌桶的容量
	Capacity int64
	// Quantum 每次到达间隔时间后所放的具体令牌数量
	Quantum int64
}
