package model

import (
	"robodesk/internal/model/entity"
	"robodesk/utils"
)

type ContractListReq struct {
	ListReq
	Status string `form:"status" json:"status"`
	Plan   string `form:"plan" json:"plan"`
}

type ContractCreateReq struct {
	ClientName   string          `json:"client_name" validate:"required,max=120"`
	ClientEmail  string          `json:"client_email" validate:"required,email"`
	UserId       string          `json:"user_id" validate:"omitempty,uuid"`
	Plan         string          `json:"plan" validate:"required,oneof=free basic pro premium"`
	MonthlyValue float64         `json:"monthly_value" validate:"gte=0"`
	Status       string          `json:"status" validate:"omitempty,oneof=active pending cancelled expired"`
	StartDate    *utils.JsonTime `json:"start_date"`
	EndDate      *utils.JsonTime `json:"end_date"`
	PaymentRef   string          `json:"payment_ref" validate:"max=120"`
	Notes        string          `json:"notes" validate:"max=2000"`
}

type ContractUpdateReq struct {
	ClientName   *string         `json:"client_name" validate:"omitempty,max=120"`
	ClientEmail  *string         `json:"client_email" validate:"omitempty,email"`
	Plan         *string         `json:"plan" validate:"omitempty,oneof=free basic pro premium"`
	MonthlyValue *float64        `json:"monthly_value" validate:"omitempty,gte=0"`
	Status       *string         `json:"status" validate:"omitempty,oneof=active pending cancelled expired"`
	StartDate    *utils.JsonTime `json:"start_date"`
	EndDate      *utils.JsonTime `json:"end_date"`
	PaymentRef   *string         `json:"payment_ref" validate:"omitempty,max=120"`
	Notes        *string         `json:"notes" validate:"omitempty,max=2000"`
}

type ContractSummary struct {
	ByStatus         map[string]int `json:"by_status"`
	Active           int            `json:"active"`
	MRR              float64        `json:"mrr"`
	AnnualProjection float64        `json:"annual_projection"`
	AverageTicket    float64        `json:"average_ticket"`
	Stale            bool           `json:"stale"`
	Notice           string         `json:"notice,omitempty"`
}

type ContractListRes struct {
	ListRes[entity.Contract]
	Summary ContractSummary `json:"summary"`
}
