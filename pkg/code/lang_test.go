package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "en"},
		{in: "en", want: "en"},
		{in: "EN-us", want: "en"},
		{in: "zh", want: "zh_cn"},
		{in: " zh-CN ", want: "zh_cn"},
		{in: "zh_cn", want: "zh_cn"},
		{in: "fr", want: "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLang(tt.in), tt.in)
	}
}

func TestCode_MsgIn(t *testing.T) {
	assert.Equal(t, "笔记不存在", ErrorNoteNotFound.MsgIn("zh_cn"))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.MsgIn("en"))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.MsgIn(""))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.Msg())
}
