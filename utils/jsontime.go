package utils

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const jsonTimeLayout = "2006-01-02 15:04:05"

// 可以解析的输入格式，按顺序尝试
var jsonTimeInputs = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	jsonTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// JsonTime 数据库时间字段，json输出为 2006-01-02 15:04:05
type JsonTime time.Time

func ParseJsonTime(s string) (JsonTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range jsonTimeInputs {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return JsonTime(t), nil
		}
	}
	return JsonTime{}, fmt.Errorf("invalid time: %q", s)
}

func (t JsonTime) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(jsonTimeLayout) + `"`), nil
}

func (t *JsonTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = JsonTime{}
		return nil
	}
	parsed, err := ParseJsonTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t JsonTime) Value() (driver.Value, error) {
	if time.Time(t).IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

func (t *JsonTime) Scan(v any) error {
	switch val := v.(type) {
	case nil:
		*t = JsonTime{}
	case time.Time:
		*t = JsonTime(val)
	case []byte:
		return t.UnmarshalJSON(val)
	case string:
		return t.UnmarshalJSON([]byte(val))
	default:
		return fmt.Errorf("can not convert %v to JsonTime", v)
	}
	return nil
}

func (t JsonTime) Time() time.Time { return time.Time(t) }

func (t JsonTime) String() string { return time.Time(t).Format(jsonTimeLayout) }

// Ptr nil或零值返回nil，便于排序时当作最早的时间
func (t *JsonTime) Ptr() *time.Time {
	if t == nil || time.Time(*t).IsZero() {
		return nil
	}
	tt := time.Time(*t)
	return &tt
}

func Now() JsonTime { return JsonTime(time.Now()) }
