package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodLimiter(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{
		Key:          "/login",
		FillInterval: time.Hour,
		Capacity:     2,
		Quantum:      2,
	})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/login?lang=en", nil)

	key := l.Key(c)
	assert.Equal(t, "/login", key)

	bucket, ok := l.GetBucket(key)
	require.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))

	_, ok = l.GetBucket("/notes")
	assert.False(t, ok)
}
