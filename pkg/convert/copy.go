// Package convert copies values between the model, domain and dto layers
// Package convert 在 model、domain、dto 各层结构体之间复制同名字段
package convert

import (
	"time"

	"github.com/haierkeys/fast-note-link-service/pkg/timex"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// timeConverters time.Time 与 timex.Time 互转
// 指针形式的零值时间视为 nil
var timeConverters = []copier.TypeConverter{
	{
		SrcType: time.Time{},
		DstType: timex.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return timex.Time(src.(time.Time)), nil
		},
	},
	{
		SrcType: timex.Time{},
		DstType: time.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return src.(timex.Time).Time(), nil
		},
	},
	{
		SrcType: (*time.Time)(nil),
		DstType: (*timex.Time)(nil),
		Fn: func(src interface{}) (interface{}, error) {
			t, _ := src.(*time.Time)
			if t == nil || t.IsZero() {
				return (*timex.Time)(nil), nil
			}
			v := timex.Time(*t)
			return &v, nil
		},
	},
	{
		SrcType: (*timex.Time)(nil),
		DstType: (*time.Time)(nil),
		Fn: func(src interface{}) (interface{}, error) {
			t, _ := src.(*timex.Time)
			if t == nil || t.IsZero() {
				return (*time.Time)(nil), nil
			}
			v := t.Time()
			return &v, nil
		},
	},
}

// Copy 将 src 中同名字段复制到 dst，dst 必须为指针
func Copy(dst, src interface{}) error {
	if err := copier.CopyWithOption(dst, src, copier.Option{Converters: timeConverters}); err != nil {
		return errors.Wrap(err, "copy struct")
	}
	return nil
}

// MustCopy 同 Copy，仅用于字段类型在编译期已确定兼容的场景，失败时 panic
func MustCopy(dst, src interface{}) {
	if err := Copy(dst, src); err != nil {
		panic(err)
	}
}
