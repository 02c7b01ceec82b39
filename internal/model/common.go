package model

// ListReq 列表页通用的搜索和排序参数
type ListReq struct {
	Search string `form:"search" json:"search"`
	SortBy string `form:"sort_by" json:"sort_by"`
	Order  string `form:"order" json:"order" validate:"omitempty,oneof=asc desc"`
}

// ListRes 列表结果，后端不可用时 Stale 为 true 并带上提示
type ListRes[T any] struct {
	Items  []T    `json:"items"`
	Total  int    `json:"total"`
	Stale  bool   `json:"stale"`
	Notice string `json:"notice,omitempty"`
}

// Session 已通过鉴权的会员
type Session struct {
	UserId  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type IdReq struct {
	Id string `uri:"id" validate:"required"`
}
