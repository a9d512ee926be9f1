// Package domain 定义领域模型和接口
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength 标题最大字符数，与 note.title 列宽一致
const MaxTitleLength = 512

// Note 笔记领域模型
type Note struct {
	ID        string
	Title     string
	Content   string
	OwnerID   string
	CreatedAt time.Time
	// UpdatedAt 从未更新过的笔记为 nil
	UpdatedAt *time.Time
}

// IsStub reports whether the note is an auto-created placeholder with no content yet
// IsStub 判断笔记是否为尚未填写内容的占位笔记
func (n *Note) IsStub() bool {
	return n.Content == ""
}

// BelongsTo 判断笔记是否属于指定用户
func (n *Note) BelongsTo(ownerID string) bool {
	return n != nil && n.OwnerID == ownerID
}

// NormalizeTitle trims surrounding whitespace; titles are stored and matched in this form
// NormalizeTitle 去除标题首尾空白
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// TitleTooLong reports whether a normalized title exceeds MaxTitleLength characters
func TitleTooLong(title string) bool {
	return utf8.RuneCountInString(title) > MaxTitleLength
}

// LinkGraph 笔记的出链与反链
type LinkGraph struct {
	Outgoing  []*Note
	Backlinks []*Note
}
