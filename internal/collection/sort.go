package collection

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection "desc" 以外的值都按升序处理
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Key 比较两条记录，返回负数、0、正数
type Key[T any] func(a, b T) int

// Text 不区分大小写比较
func Text[T any](field func(T) string) Key[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func Number[T any](field func(T) float64) Key[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// Time 按时间点比较，nil 视为 Unix 纪元
func Time[T any](field func(T) *time.Time) Key[T] {
	instant := func(t *time.Time) time.Time {
		if t == nil {
			return time.Unix(0, 0)
		}
		return *t
	}
	return func(a, b T) int {
		return instant(field(a)).Compare(instant(field(b)))
	}
}

// Rank 按枚举的自然顺序比较，不在order中的值排在最前
func Rank[T any](field func(T) string, order []string) Key[T] {
	pos := make(map[string]int, len(order))
	for i, v := range order {
		pos[v] = i + 1
	}
	return func(a, b T) int {
		return cmp.Compare(pos[field(a)], pos[field(b)])
	}
}

// Sort 稳定排序，key 为 nil 时保持原有顺序
func Sort[T any](items []T, key Key[T], dir Direction) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	if key == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if dir == Desc {
			return key(b, a)
		}
		return key(a, b)
	})
	return out
}

// Keys 按名称选择排序键，未知名称使用fallback
type Keys[T any] map[string]Key[T]

func (k Keys[T]) Get(name, fallback string) Key[T] {
	if key, ok := k[name]; ok {
		return key
	}
	return k[fallback]
}
