// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/fast-note-link-service/pkg/timex"

// NoteCreateRequest Request parameters for creating a note
// 创建笔记请求参数
type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" binding:"required,notblank,max=512"` // Note title // 笔记标题
	Content string `json:"content" form:"content" binding:"required,notblank"`     // Note content, may contain [[Title]] links // 笔记内容
}

// NoteUpdateRequest Request parameters for replacing a note's title and content
// 更新笔记请求参数
type NoteUpdateRequest struct {
	Title   string `json:"title" form:"title" binding:"required,notblank,max=512"`
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

// ---------------- DTO / Response ----------------

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	OwnerID   string      `json:"owner_id"`
	CreatedAt timex.Time  `json:"created_at"`
	UpdatedAt *timex.Time `json:"updated_at"` // null until first update // 首次更新前为 null
}

// NoteWithLinksDTO Note with its outgoing links and backlinks
// 笔记及其出链与反链
type NoteWithLinksDTO struct {
	Note          *NoteDTO   `json:"note"`
	OutgoingLinks []*NoteDTO `json:"outgoing_links"`
	Backlinks     []*NoteDTO `json:"backlinks"`
}

// MessageDTO Plain confirmation message
// 确认消息
type MessageDTO struct {
	Message string `json:"message"`
}
