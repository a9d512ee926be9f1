package upgrade

import (
	"context"
	"strings"

	"github.com/haierkeys/fast-note-link-service/internal/model"

	"gorm.io/gorm"
)

// trimBatchSize 每批处理的笔记数
const trimBatchSize = 200

// TrimNoteTitleMigrate 去除已存储标题两端空白
// 链接按去空白后的标题精确匹配，旧数据需要对齐
type TrimNoteTitleMigrate struct{}

func (m *TrimNoteTitleMigrate) Version() string {
	return "0.1.0"
}

func (m *TrimNoteTitleMigrate) Description() string {
	return "Trim surrounding whitespace from stored note titles"
}

func (m *TrimNoteTitleMigrate) Up(ctx context.Context, db *gorm.DB) error {
	var batch []*model.Note
	return db.WithContext(ctx).
		Model(&model.Note{}).
		Select("id", "title").
		FindInBatches(&batch, trimBatchSize, func(tx *gorm.DB, _ int) error {
			for _, n := range batch {
				trimmed := strings.TrimSpace(n.Title)
				if trimmed == n.Title {
					continue
				}
				if err := db.Model(&model.Note{}).Where("id = ?", n.ID).Update("title", trimmed).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
}
