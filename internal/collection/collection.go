// Package collection 对内存中的记录列表做搜索、过滤、排序和统计。
// 所有函数都不修改传入的切片，返回新的结果。
package collection

import "strings"

// All 分类过滤的哨兵值，表示不过滤
const All = "all"

// Predicate 过滤条件
type Predicate[T any] func(T) bool

// Search 不区分大小写的子串搜索，query为空时全部匹配
func Search[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Where(items)
	}
	return Where(items, Matches(q, fields))
}

// Matches 任一字段包含query即命中
func Matches[T any](query string, fields func(T) []string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(item T) bool {
		if q == "" {
			return true
		}
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

// Equals 精确匹配，want 为空或 All 时不过滤
func Equals[T any](want string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		if want == "" || strings.EqualFold(want, All) {
			return true
		}
		return field(item) == want
	}
}

// ActiveOnly showInactive 关闭时排除不活跃的记录
func ActiveOnly[T any](showInactive bool, isActive func(T) bool) Predicate[T] {
	return func(item T) bool {
		return showInactive || isActive(item)
	}
}

// Where 所有条件同时满足（AND）
func Where[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}
