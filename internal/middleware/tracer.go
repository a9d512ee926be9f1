package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

type traceIDContextKey struct{}

const (
	// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey gin.Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
)

// TraceMiddlewareWithConfig 创建请求追踪中间件
// 从请求头获取或生成 Trace ID，注入 gin.Context 与 request.Context，并写回响应头
// 同时开启 opentracing span，gorm 追踪插件的 SQL span 挂在其下
func TraceMiddlewareWithConfig(enabled bool, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultTraceIDHeader
	}
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(header)
		if traceID == "" {
			traceID = generateTraceID()
		}

		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.Finish()
		span.SetTag("trace_id", traceID)
		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.Path)

		c.Set(TraceIDKey, traceID)
		c.Request = c.Request.WithContext(WithTraceID(ctx, traceID))
		c.Header(header, traceID)

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
	}
}

// generateTraceID 生成 32 位十六进制 Trace ID
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithTraceID 将 Trace ID 写入 context.Context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDContextKey{}, traceID)
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDContextKey{}).(string); ok {
		return id
	}
	return ""
}

// GetTraceIDFromGin 从 gin.Context 获取 Trace ID
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, exists := c.Get(TraceIDKey); exists {
		if traceID, ok := id.(string); ok {
			return traceID
		}
	}
	return ""
}
