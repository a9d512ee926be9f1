// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/fast-note-link-service/pkg/timex"

// UserCreateRequest User registration request parameters
// 用户注册请求参数
type UserCreateRequest struct {
	Username string `json:"username" form:"username" binding:"required"` // User name // 用户名
	Password string `json:"password" form:"password" binding:"required"` // User password // 用户密码
}

// UserLoginRequest User login request parameters
// 用户登录请求参数
type UserLoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// ---------------- DTO / Response ----------------

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	ID        string     `json:"id"`         // User ID // 用户唯一标识
	Username  string     `json:"username"`   // Username // 用户名
	CreatedAt timex.Time `json:"created_at"` // Account created time // 账号创建时间
}

// TokenDTO Login result
// 登录结果
type TokenDTO struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}
