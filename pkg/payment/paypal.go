// Package payment 封装 PayPal Orders v2 下单和收款
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"robodesk/conf"
	"robodesk/pkg/logger"

	"github.com/go-pay/gopay"
	"github.com/go-pay/gopay/paypal"
)

const StatusCompleted = "COMPLETED"

var ErrNoApproveLink = errors.New("paypal order has no approve link")

// OrderReq 下单参数，Reference 会原样出现在收款结果中
type OrderReq struct {
	Reference   string
	Description string
	Amount      float64
	Currency    string
}

type Order struct {
	Id         string
	Status     string
	Reference  string
	ApproveURL string
	Amount     float64
	Currency   string
}

type PayPal struct {
	client    *paypal.Client
	returnURL string
	cancelURL string
}

// NewPayPal 创建客户端时会向 PayPal 获取 access token
func NewPayPal(cfg conf.PaypalConfig) (*PayPal, error) {
	client, err := paypal.NewClient(cfg.ClientID, cfg.Secret, cfg.IsProd)
	if err != nil {
		return nil, err
	}
	if conf.AppConfig.Mode == "debug" {
		client.DebugSwitch = gopay.DebugOn
	}
	return &PayPal{client: client, returnURL: cfg.ReturnURL, cancelURL: cfg.CancelURL}, nil
}

func (p *PayPal) CreateOrder(ctx context.Context, req OrderReq) (*Order, error) {
	bm := make(gopay.BodyMap)
	bm.Set("intent", "CAPTURE").
		Set("purchase_units", []map[string]any{{
			"reference_id": req.Reference,
			"description":  req.Description,
			"amount": map[string]string{
				"currency_code": req.Currency,
				"value":         FormatAmount(req.Amount),
			},
		}}).
		SetBodyMap("application_context", func(b gopay.BodyMap) {
			b.Set("return_url", p.returnURL).
				Set("cancel_url", p.cancelURL).
				Set("user_action", "PAY_NOW").
				Set("shipping_preference", "NO_SHIPPING")
		})

	rsp, err := p.client.CreateOrder(ctx, bm)
	if err != nil {
		return nil, err
	}
	if rsp.Code != paypal.Success {
		logger.Errorf("paypal: create order %s: %d %s", req.Reference, rsp.Code, rsp.Error)
		return nil, fmt.Errorf("paypal create order: status %d", rsp.Code)
	}
	order := orderFrom(rsp.Response)
	if order.ApproveURL == "" {
		return nil, ErrNoApproveLink
	}
	return order, nil
}

// GetOrder 查询订单，不改变订单状态
func (p *PayPal) GetOrder(ctx context.Context, orderId string) (*Order, error) {
	rsp, err := p.client.OrderDetail(ctx, orderId, nil)
	if err != nil {
		return nil, err
	}
	if rsp.Code != paypal.Success {
		return nil, fmt.Errorf("paypal order detail: status %d", rsp.Code)
	}
	return orderFrom(rsp.Response), nil
}

// CaptureOrder 收款；收款结果没有带上 reference 时再查询一次订单详情
func (p *PayPal) CaptureOrder(ctx context.Context, orderId string) (*Order, error) {
	rsp, err := p.client.OrderCapture(ctx, orderId, nil)
	if err != nil {
		return nil, err
	}
	if rsp.Code != paypal.Success {
		logger.Errorf("paypal: capture order %s: %d %s", orderId, rsp.Code, rsp.Error)
		return nil, fmt.Errorf("paypal capture order: status %d", rsp.Code)
	}
	order := orderFrom(rsp.Response)
	if order.Reference != "" {
		return order, nil
	}

	full, err := p.GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	full.Status = order.Status
	return full, nil
}

func orderFrom(d *paypal.OrderDetail) *Order {
	o := &Order{}
	if d == nil {
		return o
	}
	o.Id = d.Id
	o.Status = d.Status
	for _, l := range d.Links {
		if l != nil && (l.Rel == "approve" || l.Rel == "payer-action") {
			o.ApproveURL = l.Href
			break
		}
	}
	for _, u := range d.PurchaseUnits {
		if u == nil {
			continue
		}
		o.Reference = u.ReferenceId
		if u.Amount != nil {
			o.Currency = u.Amount.CurrencyCode
			o.Amount, _ = strconv.ParseFloat(u.Amount.Value, 64)
		}
		break
	}
	return o
}

// FormatAmount PayPal 要求金额为两位小数的字符串
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Reference 订单引用 plan:userId
func Reference(plan, userId string) string {
	return plan + ":" + userId
}

func ParseReference(ref string) (plan, userId string, ok bool) {
	plan, userId, ok = strings.Cut(ref, ":")
	if !ok || plan == "" || userId == "" {
		return "", "", false
	}
	return plan, userId, true
}
