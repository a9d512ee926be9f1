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

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// ownerID 取当前用户 ID，为空时直接输出错误
func (h *NoteHandler) ownerID(c *gin.Context, method string) (string, bool) {
	uid := pkgapp.GetUID(c)
	if uid == "" {
		h.App.Logger().Error(method + " err uid empty")
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
		return "", false
	}
	return uid, true
}

// List 获取当前用户全部笔记
// @Summary 获取笔记列表
// @Description 返回当前用户的全部笔记，按创建时间升序，结果经过读缓存
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteDTO} "成功"
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid, ok := h.ownerID(c, "NoteHandler.List")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	notes, err := h.App.NoteService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(notes))
}

// Create 创建笔记
// @Summary 创建笔记
// @Description 创建笔记，内容中引用的不存在标题会自动创建空白占位笔记
// @Tags 笔记
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid, ok := h.ownerID(c, "NoteHandler.Create")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Get 获取单条笔记
// @Summary 获取笔记详情
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path string true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid, ok := h.ownerID(c, "NoteHandler.Get")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, uid, c.Param("id"))
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Update 替换笔记标题与内容
// @Summary 更新笔记
// @Tags 笔记
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param id path string true "笔记 ID"
// @Param params body dto.NoteUpdateRequest true "更新参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid, ok := h.ownerID(c, "NoteHandler.Update")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Update(ctx, uid, c.Param("id"), params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
// @Summary 删除笔记
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path string true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=dto.MessageDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid, ok := h.ownerID(c, "NoteHandler.Delete")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	msg, err := h.App.NoteService.Delete(ctx, uid, c.Param("id"))
	if err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(msg))
}

// WithLinks 获取笔记及其出链、反链
// @Summary 获取笔记链接关系
// @Description 出链按内容中首次出现顺序，反链按存储顺序；不经过读缓存
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path string true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteWithLinksDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /notes/{id}/with_links [get]
func (h *NoteHandler) WithLinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid, ok := h.ownerID(c, "NoteHandler.WithLinks")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	res, err := h.App.NoteService.GetWithLinks(ctx, uid, c.Param("id"))
	if err != nil {
		h.logError(ctx, "NoteHandler.WithLinks", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}
