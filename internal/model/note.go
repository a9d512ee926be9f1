package model

import "github.com/haierkeys/fast-note-link-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID        string      `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	OwnerID   string      `gorm:"column:owner_id;size:36;not null;index:idx_note_owner_title,priority:1;index:idx_note_owner_created,priority:1" json:"ownerId" form:"ownerId"`
	Title     string      `gorm:"column:title;size:512;not null;index:idx_note_owner_title,priority:2" json:"title" form:"title"`
	Content   string      `gorm:"column:content;type:text;not null" json:"content" form:"content"`
	CreatedAt timex.Time  `gorm:"column:created_at;not null;autoCreateTime:false;index:idx_note_owner_created,priority:2" json:"createdAt" form:"createdAt"`
	UpdatedAt *timex.Time `gorm:"column:updated_at;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
