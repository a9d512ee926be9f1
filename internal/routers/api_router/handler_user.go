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

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// Register user registration
// @Summary User registration
// @Description 处理用户注册 HTTP 请求，验证参数并调用 UserService。注册功能可能在服务器设置中被禁用。
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "Register Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 409 {object} pkgapp.Res "User Already Exists"
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	// Parameter binding and validation
	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Register.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	userDTO, err := h.App.UserService.Register(ctx, params)
	if err != nil {
		h.logError(ctx, "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// Login user login
// @Summary User login
// @Description 处理用户登录 HTTP 请求，验证参数并返回认证 Token。/token 为同一接口的别名。
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TokenDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Invalid Credentials"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Login.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	token, err := h.App.UserService.Login(ctx, params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(token))
}
