// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
//
// Lookups that find nothing return gorm.ErrRecordNotFound.
// ListByOwner and GetByOwnerAndTitle order by created_at, then id, so the
// oldest note wins when titles collide.
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id string) (*Note, error)

	// GetByOwnerAndTitle 根据所有者和标题获取笔记
	GetByOwnerAndTitle(ctx context.Context, ownerID, title string) (*Note, error)

	// ListByOwner 获取所有者的全部笔记
	ListByOwner(ctx context.Context, ownerID string) ([]*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记标题与内容，并刷新 updated_at
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id, ownerID string) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)
}
