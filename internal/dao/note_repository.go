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

// noteOrder 标题冲突时最早创建的笔记优先
const noteOrder = "created_at ASC, id ASC"

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao             *Dao
	customPrefixKey string
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao, customPrefixKey: "owner_note_"}
}

func (r *noteRepository) GetKey(ownerID string) string {
	return r.customPrefixKey + ownerID
}

func (r *noteRepository) note(ctx context.Context) *gorm.DB {
	return r.dao.UseWithMigrate("Note").WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	n := &domain.Note{}
	convert.MustCopy(n, m)
	return n
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	m := &model.Note{}
	convert.MustCopy(m, n)
	return m
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var m model.Note
	if err := r.note(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByOwnerAndTitle 根据所有者和标题获取笔记
func (r *noteRepository) GetByOwnerAndTitle(ctx context.Context, ownerID, title string) (*domain.Note, error) {
	var m model.Note
	err := r.note(ctx).
		Where("owner_id = ? AND title = ?", ownerID, title).
		Order(noteOrder).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByOwner 获取所有者的全部笔记
func (r *noteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	var list []*model.Note
	if err := r.note(ctx).Where("owner_id = ?", ownerID).Order(noteOrder).Find(&list).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Note, 0, len(list))
	for _, m := range list {
		result = append(result, r.toDomain(m))
	}
	return result, nil
}

// Create 创建笔记，ID 为空时生成 UUID
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}
	m.UpdatedAt = nil

	err := r.dao.ExecuteWrite(ctx, note.OwnerID, r, func(db *gorm.DB) error {
		return r.note(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新笔记标题与内容，并刷新 updated_at
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := timex.Now()

	err := r.dao.ExecuteWrite(ctx, note.OwnerID, r, func(db *gorm.DB) error {
		res := r.note(ctx).Model(&model.Note{}).
			Where("id = ? AND owner_id = ?", note.ID, note.OwnerID).
			Updates(map[string]interface{}{
				"title":      note.Title,
				"content":    note.Content,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID)
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, ownerID string) error {
	return r.dao.ExecuteWrite(ctx, ownerID, r, func(db *gorm.DB) error {
		res := r.note(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)
