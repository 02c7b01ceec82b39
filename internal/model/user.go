package model

import "robodesk/internal/model/entity"

type UserListReq struct {
	ListReq
	Plan         string `form:"plan" json:"plan"`
	ShowInactive bool   `form:"show_inactive" json:"show_inactive"`
}

type UserStats struct {
	ByPlan    map[string]int     `json:"by_plan"`
	Active    int                `json:"active"`
	Inactive  int                `json:"inactive"`
	MRR       float64            `json:"mrr"`
	MRRByPlan map[string]float64 `json:"mrr_by_plan"`
}

type UserListRes struct {
	ListRes[entity.User]
	Stats UserStats `json:"stats"`
}

// UserUpdateReq 为nil的字段不修改
type UserUpdateReq struct {
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Plan     *string `json:"plan" validate:"omitempty,oneof=free basic pro premium"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

type MeRes struct {
	entity.User
	PlanName string `json:"plan_name"`
	Tier     int    `json:"tier"`
	Stale    bool   `json:"stale"`
	Notice   string `json:"notice,omitempty"`
}
