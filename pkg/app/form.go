package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 所有错误消息
func (v ValidErrors) ErrorsToString() string {
	return v.Error()
}

// MapsToString field name to message
// MapsToString 字段名到错误消息的映射
func (v ValidErrors) MapsToString() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Key] = err.Message
	}
	return out
}

// BindAndValid binds the request into v and validates it, translating messages
// with the translator the lang middleware placed on the context
// BindAndValid 绑定并校验参数，使用 lang 中间件注入的翻译器翻译错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	var trans ut.Translator
	if t, exists := c.Get("trans"); exists {
		trans, _ = t.(ut.Translator)
	}

	for _, fe := range verrs {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		errs = append(errs, &ValidError{Key: fe.Field(), Message: msg})
	}
	return false, errs
}
