package service

import (
	"context"
	"errors"

	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/internal/dto"
	"github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/convert"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"github.com/haierkeys/fast-note-link-service/pkg/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录，返回访问 Token
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.TokenDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, lg *zap.Logger, config *ServiceConfig) UserService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       lg,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	d := &dto.UserDTO{}
	convert.MustCopy(d, user)
	return d
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	// 验证用户名格式
	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserUsernameNotValid
	}

	// 检查用户名是否已存在
	existing, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	// 生成密码哈希
	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username: params.Username,
		Password: password,
	})
	if err != nil {
		// 并发注册同名用户时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, code.ErrorUserAlreadyExists
		}
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	s.logger.Info("user registered", zap.String(logger.FieldOwnerID, user.ID), zap.String("username", user.Username))
	return s.domainToDTO(user), nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露用户是否存在，统一返回用户名或密码错误
			return nil, code.ErrorUserLoginPasswordFailed
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 验证密码
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	token, err := s.tokenManager.Generate(user.ID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	return &dto.TokenDTO{Token: token, TokenType: "bearer"}, nil
}

var _ UserService = (*userService)(nil)
