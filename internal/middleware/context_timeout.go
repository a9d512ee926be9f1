package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ContextTimeout 为请求上下文设置超时，timeout <= 0 时不限制
// 处理器超时且尚未写出响应时返回统一错误
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !c.Writer.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails("request timeout"))
			c.Abort()
		}
	}
}
