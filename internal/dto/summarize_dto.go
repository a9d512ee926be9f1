package dto

// SummarizeRequest 摘要请求，content 优先，其次按标题查找笔记
type SummarizeRequest struct {
	Content string `json:"content" form:"content"`
	Title   string `json:"title" form:"title"`
}

// SummaryDTO 摘要结果
type SummaryDTO struct {
	Summary string `json:"summary"`
}
