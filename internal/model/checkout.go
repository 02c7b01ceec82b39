package model

import "robodesk/internal/model/entity"

type CheckoutStartRes struct {
	OrderId    string  `json:"order_id"`
	ApproveURL string  `json:"approve_url"`
	Plan       string  `json:"plan"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

type CheckoutCaptureReq struct {
	OrderId string `json:"order_id" validate:"required"`
}

type CheckoutCaptureRes struct {
	Contract entity.Contract `json:"contract"`
	Plan     string          `json:"plan"`
}
