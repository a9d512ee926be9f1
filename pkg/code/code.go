package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// HTTP 状态码
	httpStatus int
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers a failure code. httpStatus defaults to 200 when omitted.
// NewError 注册错误码，未指定 httpStatus 时默认为 200
func NewError(code int, l lang, httpStatus ...int) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()

	status := http.StatusOK
	if len(httpStatus) > 0 {
		status = httpStatus[0]
	}
	return &Code{code: code, status: false, httpStatus: status, Lang: l}
}

func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, status: true, httpStatus: http.StatusOK, Lang: l}
}

// Clone 创建一个新的 Code 副本
// Registered codes are package-level singletons; every With* call works on a copy
// so concurrent requests never share data or details.
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		Lang:       e.Lang,
		details:    []string{},
	}
}

func (e *Code) Error() string {
	if e.haveDetails && len(e.details) > 0 {
		return fmt.Sprintf("%s: %v", e.Msg(), e.details)
	}
	return e.Msg()
}

// Is reports whether target carries the same code, so errors.Is works across clones.
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code && t.status == e.status
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// MsgIn 返回指定语言的消息
func (e *Code) MsgIn(language string) string {
	return e.Lang.In(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.details = e.details
	c.haveDetails = e.haveDetails
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.data = e.data
	c.haveData = e.haveData
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}

// StatusCode HTTP 状态码
func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
