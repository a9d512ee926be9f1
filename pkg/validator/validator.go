// Package validator wires go-playground/validator into gin's binding
// Package validator 将 go-playground/validator 接入 gin 的参数绑定
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements binding.StructValidator
type CustomValidator struct {
	Once     sync.Once
	Validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

var _ binding.StructValidator = (*CustomValidator)(nil)

// ValidateStruct validates structs and pointers to structs, ignoring everything else
// ValidateStruct 校验结构体及其指针，其他类型直接放行
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.Validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.Once.Do(func() {
		v.Validate = validator.New()
		v.Validate.SetTagName("binding")
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// RegisterCustom registers the service's custom tags on gin's validator
// RegisterCustom 注册自定义校验标签
//
//	notblank: string must contain a non-space character
func RegisterCustom() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", NotBlank)
	}
}

// NotBlank reports whether a string field has non-whitespace content
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
