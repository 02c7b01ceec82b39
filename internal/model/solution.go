package model

import "robodesk/internal/model/entity"

// SolutionSubmitReq 访客提交定制需求
type SolutionSubmitReq struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"max=40"`
	Company     string  `json:"company" validate:"max=120"`
	Category    string  `json:"category" validate:"required,oneof=robot indicator strategy integration other"`
	Description string  `json:"description" validate:"required,min=10,max=5000"`
	Budget      float64 `json:"budget" validate:"gte=0"`
	Captcha     string  `json:"captcha" validate:"required"`
}

type SolutionListReq struct {
	ListReq
	Status     string `form:"status" json:"status"`
	Priority   string `form:"priority" json:"priority"`
	Category   string `form:"category" json:"category"`
	ShowClosed bool   `form:"show_closed" json:"show_closed"`
}

type SolutionUpdateReq struct {
	Status     *string `json:"status" validate:"omitempty,oneof=new in_review quoted approved rejected done"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=5000"`
}

type SolutionSummary struct {
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	Open       int            `json:"open"`
}

type SolutionListRes struct {
	ListRes[entity.SolutionRequest]
	Summary SolutionSummary `json:"summary"`
}

type SolutionSubmitRes struct {
	Id     int64  `json:"id,string"`
	Status string `json:"status"`
}
