// Package gateway 是访问后端服务（关系存储 + 变更订阅）的唯一入口
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var (
	ErrNotConfigured = errors.New("backend is not configured")
	ErrNotFound      = errors.New("record not found")
)

// Filter 列等值过滤
type Filter map[string]any

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters Filter
	Order   []Order
	Limit   int
}

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// Change 一条记录的变更事件
type Change struct {
	Table  string         `json:"table"`
	Type   ChangeType     `json:"type"`
	ID     any            `json:"id"`
	Record map[string]any `json:"record,omitempty"`
	At     time.Time      `json:"at"`
	Origin string         `json:"origin"`
}

type Subscription interface {
	// Unsubscribe 停止推送，可以重复调用
	Unsubscribe()
}

type Gateway interface {
	Select(ctx context.Context, table string, q Query, dest any) error
	// Insert 写入后record中的id、时间戳会被回填
	Insert(ctx context.Context, table string, record any) error
	Update(ctx context.Context, table string, id any, patch map[string]any) error
	Delete(ctx context.Context, table string, id any) error
	Subscribe(table string, filter Filter, onChange func(Change)) Subscription
}

// ToRecord 把实体转成字段map，数字保持原样避免int64精度丢失
func ToRecord(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Matches 记录是否满足所有等值条件
func (f Filter) Matches(record map[string]any) bool {
	for k, want := range f {
		got, ok := record[k]
		if !ok || valueString(got) != valueString(want) {
			return false
		}
	}
	return true
}

func valueString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return cast.ToString(s)
	}
}
