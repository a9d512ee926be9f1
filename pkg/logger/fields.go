package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldOwnerID 笔记所有者 ID 字段
	FieldOwnerID = "ownerId"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldTitle 笔记标题字段
	FieldTitle = "title"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldCacheKey 缓存键字段
	FieldCacheKey = "cacheKey"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldProvider 摘要服务提供方字段
	FieldProvider = "provider"

	// FieldTask 任务名称字段
	FieldTask = "task"
)
