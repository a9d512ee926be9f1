package api_router

import (
	"github.com/haierkeys/fast-note-link-service/internal/app"
	"github.com/haierkeys/fast-note-link-service/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	apperrors "github.com/haierkeys/fast-note-link-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SummarizeHandler 摘要 API 路由处理器
type SummarizeHandler struct {
	*Handler
}

// NewSummarizeHandler 创建 SummarizeHandler 实例
func NewSummarizeHandler(a *app.App) *SummarizeHandler {
	return &SummarizeHandler{Handler: NewHandler(a)}
}

// Summarize 生成摘要
// @Summary 文本摘要
// @Description 对 content 生成摘要；未提供 content 时按 title 查找当前用户的笔记
// @Tags 摘要
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.SummarizeRequest true "摘要参数"
// @Success 200 {object} pkgapp.Res{data=dto.SummaryDTO} "成功"
// @Failure 502 {object} pkgapp.Res "摘要服务调用失败"
// @Router /summarize [post]
func (h *SummarizeHandler) Summarize(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SummarizeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SummarizeHandler.Summarize.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == "" {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	summary, err := h.App.SummarizeService.Summarize(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "SummarizeHandler.Summarize", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(summary))
}
