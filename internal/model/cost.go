package model

import (
	"robodesk/internal/model/entity"
	"robodesk/utils"
)

type CostListReq struct {
	ListReq
	Category  string `form:"category" json:"category"`
	Recurring string `form:"recurring" json:"recurring" validate:"omitempty,oneof=all true false"`
}

type CostCreateReq struct {
	Description string          `json:"description" validate:"required,max=200"`
	Category    string          `json:"category" validate:"required,oneof=infrastructure marketing software personnel taxes other"`
	Amount      float64         `json:"amount" validate:"gt=0"`
	Date        *utils.JsonTime `json:"date"`
	Recurring   bool            `json:"recurring"`
}

type CostUpdateReq struct {
	Description *string         `json:"description" validate:"omitempty,max=200"`
	Category    *string         `json:"category" validate:"omitempty,oneof=infrastructure marketing software personnel taxes other"`
	Amount      *float64        `json:"amount" validate:"omitempty,gt=0"`
	Date        *utils.JsonTime `json:"date"`
	Recurring   *bool           `json:"recurring"`
}

type CostSummary struct {
	ByCategory       map[string]float64 `json:"by_category"`
	Total            float64            `json:"total"`
	MonthlyRecurring float64            `json:"monthly_recurring"`
	Stale            bool               `json:"stale"`
	Notice           string             `json:"notice,omitempty"`
}

type CostListRes struct {
	ListRes[entity.Cost]
	Summary CostSummary `json:"summary"`
}
