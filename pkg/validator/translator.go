package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Init installs the custom validator on gin, registers the custom tags and
// returns the en/zh translators used by BindAndValid
// Init 安装自定义验证器并返回 en/zh 翻译器
func Init() (*ut.UniversalTranslator, error) {
	customValidator := NewCustomValidator()
	customValidator.Engine()
	binding.Validator = customValidator

	uni := ut.New(en.New(), en.New(), zh.New())

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return uni, nil
	}

	// 错误信息中使用 json 字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, err
	}

	RegisterCustom()
	return uni, nil
}
