package book

import (
	"bytes"
	"fmt"
	"time"
)

// 不带时区偏移的ISO-8601格式,按UTC解析
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp ISO-8601时间
// 反序列化同时接受RFC 3339(带偏移)和不带偏移的写法,序列化统一输出RFC 3339
type Timestamp struct {
	time.Time
}

// NewTimestamp 包装time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON 输出RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Time.Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON 解析ISO-8601时间,null保持零值
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("CraatedAt必须是字符串: %s", data)
	}
	s := string(data[1 : len(data)-1])

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("无效的ISO-8601时间: %q", s)
}
