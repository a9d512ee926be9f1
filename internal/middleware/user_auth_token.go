package middleware

import (
	"strings"

	"github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// bearerPrefix is stripped case-insensitively from the Authorization value
const bearerPrefix = "bearer "

// requestToken 按优先级获取 Token：Query authorization -> Header Authorization -> Query token -> Header token
func requestToken(c *gin.Context) string {
	var token string

	if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	} else if s := c.GetHeader("Token"); len(s) != 0 {
		token = s
	}

	token = strings.TrimSpace(token)
	if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}
	return token
}

// UserAuthTokenWithConfig 用户 Token 认证中间件（使用注入的密钥）
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := requestToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}
		c.Set(app.UserTokenContextKey, user)

		c.Next()
	}
}
