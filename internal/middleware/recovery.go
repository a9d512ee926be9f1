package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获处理器 panic，记录日志并返回 500
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var msg string
			switch v := r.(type) {
			case error:
				msg = v.Error()
			case string:
				msg = v
			default:
				msg = fmt.Sprintf("%v", v)
			}

			lg.Error("Recovered from panic",
				zap.String("router", c.Request.URL.Path),
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String("user-agent", c.Request.UserAgent()),
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.String("panic", msg),
				zap.String("stack", string(debug.Stack())),
			)

			// 返回统一的错误响应
			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(msg))
			c.Abort()
		}()

		c.Next()
	}
}
