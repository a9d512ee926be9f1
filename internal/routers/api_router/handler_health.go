package api_router

import (
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/app"
	pkgapp "github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// WelcomeMessage GET / 的欢迎语
const WelcomeMessage = "Welcome to the linked notes service"

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string  `json:"status"`   // "healthy" 或 "unhealthy"
	Version  string  `json:"version"`  // 服务版本号
	Uptime   float64 `json:"uptime"`   // 运行时间（秒）
	Database string  `json:"database"` // "connected" 或 "error"
}

// Welcome 根路径欢迎信息
// @Summary 欢迎信息
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res
// @Router / [get]
func (h *HealthHandler) Welcome(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(gin.H{
		"message": WelcomeMessage,
		"version": h.App.Version().Version,
	}))
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
	}

	// 检查数据库连接
	if err := h.App.DB.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
		h.logError(c.Request.Context(), "HealthHandler.Check", err)
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.ErrorDBQuery.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
