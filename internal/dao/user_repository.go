// Package dao 实现数据访问层
package dao

import (
	"context"

	"github.com/google/uuid"
	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/internal/model"
	"github.com/haierkeys/fast-note-link-service/pkg/convert"
	"github.com/haierkeys/fast-note-link-service/pkg/timex"
	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// GetKey 用户表写入共享同一队列，保证用户名唯一检查与写入顺序一致
func (r *userRepository) GetKey(string) string {
	return "user#user"
}

func (r *userRepository) user(ctx context.Context) *gorm.DB {
	return r.dao.UseWithMigrate("User").WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{}
	convert.MustCopy(u, m)
	return u
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	m := &model.User{}
	convert.MustCopy(m, user)
	return m
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m model.User
	if err := r.user(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	if err := r.user(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户，用户名重复时返回 gorm.ErrDuplicatedKey
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = timex.Now()

	err := r.dao.ExecuteWrite(ctx, m.ID, r, func(db *gorm.DB) error {
		return r.user(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
