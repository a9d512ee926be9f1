// Package timex wraps time.Time with the JSON and database encoding used across the service
// Package timex 封装 time.Time，统一 JSON 与数据库编码
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the wire format of Time
// Layout 时间序列化格式
const Layout = time.RFC3339

// Time is a time.Time that serializes as RFC 3339 and maps to a datetime column
type Time time.Time

// Now 当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

// MarshalJSON 序列化为 RFC 3339 字符串，零值输出 null
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(Layout) + `"`), nil
}

// UnmarshalJSON 解析 RFC 3339 字符串或 null
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time{}
		return nil
	}
	parsed, err := time.Parse(`"`+Layout+`"`, s)
	if err != nil {
		parsed, err = time.Parse(`"`+time.RFC3339Nano+`"`, s)
		if err != nil {
			return err
		}
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(value)
	case string:
		return t.scanString(value)
	case []byte:
		return t.scanString(string(value))
	default:
		return fmt.Errorf("timex: cannot scan %T into Time", v)
	}
	return nil
}

func (t *Time) scanString(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Time(parsed)
			return nil
		}
	}
	return fmt.Errorf("timex: cannot parse %q", s)
}
