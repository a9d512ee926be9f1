package code

import "net/http"

var (
	Failed = NewError(0, lang{en: "Failed", zh_cn: "失败"})

	Success       = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(2, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(3, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(4, lang{en: "Note deleted", zh_cn: "笔记已删除"})
)

// 通用错误
var (
	ErrorServerInternal  = NewError(500, lang{en: "Internal server error", zh_cn: "服务器内部错误"}, http.StatusInternalServerError)
	ErrorNotFoundAPI     = NewError(404, lang{en: "API not found", zh_cn: "接口不存在"}, http.StatusNotFound)
	ErrorInvalidParams   = NewError(400, lang{en: "Invalid parameters", zh_cn: "参数错误"}, http.StatusBadRequest)
	ErrorTooManyRequests = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"}, http.StatusTooManyRequests)
	ErrorDBQuery         = NewError(501, lang{en: "Database query failed", zh_cn: "数据库查询失败"}, http.StatusInternalServerError)
	ErrorDBWrite         = NewError(502, lang{en: "Database write failed", zh_cn: "数据库写入失败"}, http.StatusInternalServerError)
	ErrorCacheInvalidate = NewError(503, lang{en: "Cache invalidation failed", zh_cn: "缓存失效处理失败"}, http.StatusInternalServerError)
)

// 用户相关
var (
	ErrorNotUserAuthToken        = NewError(401, lang{en: "Authentication token missing", zh_cn: "缺少认证 Token"}, http.StatusUnauthorized)
	ErrorInvalidUserAuthToken    = NewError(402, lang{en: "Invalid authentication token", zh_cn: "认证 Token 无效"}, http.StatusUnauthorized)
	ErrorUserLoginPasswordFailed = NewError(403, lang{en: "Incorrect username or password", zh_cn: "用户名或密码错误"}, http.StatusUnauthorized)
	ErrorUserAlreadyExists       = NewError(409, lang{en: "Username already registered", zh_cn: "用户名已被注册"}, http.StatusConflict)
	ErrorUserUsernameNotValid    = NewError(410, lang{en: "Username must be 3-20 letters, digits or underscores", zh_cn: "用户名需为 3-20 位字母、数字或下划线"}, http.StatusBadRequest)
	ErrorUserRegisterIsDisable   = NewError(411, lang{en: "Registration is disabled", zh_cn: "注册已关闭"}, http.StatusForbidden)
	ErrorUserRegister            = NewError(412, lang{en: "Registration failed", zh_cn: "注册失败"}, http.StatusInternalServerError)
	ErrorPasswordNotValid        = NewError(413, lang{en: "Password could not be processed", zh_cn: "密码处理失败"}, http.StatusBadRequest)
	ErrorTokenGenerate           = NewError(414, lang{en: "Token generation failed", zh_cn: "Token 生成失败"}, http.StatusInternalServerError)
)

// 笔记相关
var (
	ErrorNoteNotFound        = NewError(450, lang{en: "Note not found", zh_cn: "笔记不存在"}, http.StatusNotFound)
	ErrorNoteTitleRequired   = NewError(451, lang{en: "Title must not be empty", zh_cn: "标题不能为空"}, http.StatusBadRequest)
	ErrorNoteContentRequired = NewError(452, lang{en: "Content must not be empty", zh_cn: "内容不能为空"}, http.StatusBadRequest)
	ErrorNoteTitleTooLong    = NewError(453, lang{en: "Title must be at most 512 characters", zh_cn: "标题不能超过 512 个字符"}, http.StatusBadRequest)
)

// 摘要相关
var (
	ErrorSummarizeInputRequired = NewError(470, lang{en: "Either content or title is required", zh_cn: "内容或标题至少提供一项"}, http.StatusBadRequest)
	ErrorSummarizeFailed        = NewError(471, lang{en: "Summarization service failed", zh_cn: "摘要服务调用失败"}, http.StatusBadGateway)
)
