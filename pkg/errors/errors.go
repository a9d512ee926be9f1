package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/fast-note-link-service/internal/middleware"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Status 恒为 false
	Status bool `json:"status"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// HTTPStatus 响应状态码（不序列化）
	HTTPStatus int `json:"-"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:       c.Code(),
		Message:    c.Msg(),
		Details:    c.Details(),
		HTTPStatus: c.StatusCode(),
		Cause:      cause,
		Timestamp:  time.Now(),
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID，将错误转换为 AppError 并按错误码对应的 HTTP 状态返回
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		c.JSON(statusOf(appErr.HTTPStatus), appErr)
		return
	}

	// 检查是否是 Code 类型错误
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		response := NewAppError(codeErr, err).WithTraceID(traceID)
		response.Message = codeErr.MsgIn(c.GetString(code.LangContextKey))
		c.JSON(codeErr.StatusCode(), response)
		return
	}

	// 未知错误，返回内部错误
	c.JSON(http.StatusInternalServerError, &AppError{
		Code:      code.ErrorServerInternal.Code(),
		Message:   code.ErrorServerInternal.MsgIn(c.GetString(code.LangContextKey)),
		TraceID:   traceID,
		Timestamp: time.Now(),
	})
}

func statusOf(s int) int {
	if s == 0 {
		return http.StatusInternalServerError
	}
	return s
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
