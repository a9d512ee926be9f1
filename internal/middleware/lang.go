package middleware

import (
	"strings"

	"github.com/haierkeys/fast-note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 语言来源：Query lang -> Header lang -> Accept-Language
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) != 0 {
			lang = strings.SplitN(strings.SplitN(s, ",", 2)[0], ";", 2)[0]
		}

		lang = code.NormalizeLang(lang)

		// 翻译器按基础语言注册（zh、en）
		base := strings.SplitN(lang, "_", 2)[0]
		trans, found := uni.GetTranslator(base)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)
		// 语言只保存在本次请求上下文
		c.Set(code.LangContextKey, lang)

		c.Next()
	}
}
