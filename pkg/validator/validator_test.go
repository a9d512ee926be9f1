package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title string `binding:"required,notblank"`
}

func TestCustomValidator_NotBlank(t *testing.T) {
	binding.Validator = NewCustomValidator()
	RegisterCustom()

	assert.NoError(t, binding.Validator.ValidateStruct(&sample{Title: "ok"}))
	assert.Error(t, binding.Validator.ValidateStruct(&sample{Title: "   "}))
	assert.Error(t, binding.Validator.ValidateStruct(&sample{}))
	assert.NoError(t, binding.Validator.ValidateStruct("not a struct"))
}

type translated struct {
	Username string `json:"username" binding:"required"`
}

func TestInit(t *testing.T) {
	uni, err := Init()
	if !assert.NoError(t, err) {
		return
	}

	_, found := uni.GetTranslator("zh")
	assert.True(t, found)

	err = binding.Validator.ValidateStruct(&translated{})
	assert.ErrorContains(t, err, "username")
	assert.Error(t, binding.Validator.ValidateStruct(&sample{Title: " "}))
}
