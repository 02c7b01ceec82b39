// Package notify 把新的定制需求等事件推送给管理员（邮件、APNs、Telegram）
package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Message 一条通知
type Message struct {
	Title  string
	Body   string
	Fields map[string]string
}

// Text 纯文本形式，字段按名称排序
func (m Message) Text() string {
	var b strings.Builder
	b.WriteString(m.Title)
	if m.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(m.Body)
	}
	if len(m.Fields) > 0 {
		keys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n%s: %s", k, m.Fields[k])
		}
	}
	return b.String()
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi 依次调用所有渠道，某个渠道失败不影响其它渠道
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var err error
	for _, n := range m {
		err = multierr.Append(err, n.Notify(ctx, msg))
	}
	return err
}

// Nop 没有配置任何渠道时使用
type Nop struct{}

func (Nop) Notify(context.Context, Message) error { return nil }
