package service

import (
	"context"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/logger"
	"robodesk/pkg/payment"
	"robodesk/utils"
	"robodesk/utils/uuid"
)

// PaymentGateway 支付渠道，*payment.PayPal 实现
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req payment.OrderReq) (*payment.Order, error)
	GetOrder(ctx context.Context, orderId string) (*payment.Order, error)
	CaptureOrder(ctx context.Context, orderId string) (*payment.Order, error)
}

type CheckoutService interface {
	// 创建支付订单，返回付款链接
	CheckoutStart(ctx context.Context, session model.Session, planCode string) (model.CheckoutStartRes, error)
	// 确认收款，生成合同并升级会员套餐
	CheckoutCapture(ctx context.Context, session model.Session, orderId string) (model.CheckoutCaptureRes, error)
}

type checkoutService struct {
	pay       PaymentGateway
	contracts dao.ContractDao
	users     dao.UserDao
	plans     PlanService
	node      *uuid.SnowNode
	currency  string
}

// NewCheckoutService pay 为nil时支付不可用
func NewCheckoutService(pay PaymentGateway, contracts dao.ContractDao, users dao.UserDao, plans PlanService,
	node *uuid.SnowNode, currency string) CheckoutService {
	return &checkoutService{
		pay:       pay,
		contracts: contracts,
		users:     users,
		plans:     plans,
		node:      node,
		currency:  currency,
	}
}

func (s *checkoutService) CheckoutStart(ctx context.Context, session model.Session, planCode string) (model.CheckoutStartRes, error) {
	if s.pay == nil {
		return model.CheckoutStartRes{}, errors.WithCode(ecode.PaymentErr, "payments are not available")
	}
	plan, ok := s.plans.PlanLookup(ctx)[planCode]
	if !ok || plan.MonthlyPrice <= 0 {
		return model.CheckoutStartRes{}, errors.WithCode(ecode.ValidateErr, "plan cannot be purchased")
	}

	order, err := s.pay.CreateOrder(ctx, payment.OrderReq{
		Reference:   payment.Reference(plan.Code, session.UserId),
		Description: plan.Name + " plan",
		Amount:      plan.MonthlyPrice,
		Currency:    s.currency,
	})
	if err != nil {
		logger.Errorf("checkout: create order for %s: %v", session.UserId, err)
		return model.CheckoutStartRes{}, errors.Wrap(err, ecode.PaymentErr, "")
	}
	return model.CheckoutStartRes{
		OrderId:    order.Id,
		ApproveURL: order.ApproveURL,
		Plan:       plan.Code,
		Amount:     plan.MonthlyPrice,
		Currency:   s.currency,
	}, nil
}

func (s *checkoutService) CheckoutCapture(ctx context.Context, session model.Session, orderId string) (model.CheckoutCaptureRes, error) {
	if s.pay == nil {
		return model.CheckoutCaptureRes{}, errors.WithCode(ecode.PaymentErr, "payments are not available")
	}

	// 同一订单重复确认时返回已有的合同
	existing, err := s.contracts.ContractGetByPaymentRef(ctx, orderId)
	switch {
	case err == nil:
		if existing.UserId == nil || *existing.UserId != session.UserId {
			return model.CheckoutCaptureRes{}, errors.WithCode(ecode.ForbiddenErr, "")
		}
		return model.CheckoutCaptureRes{Contract: existing, Plan: existing.Plan}, nil
	case !errors.Is(err, gateway.ErrNotFound):
		return model.CheckoutCaptureRes{}, writeErr(err)
	}

	// 先确认订单属于当前会员再收款
	pending, err := s.pay.GetOrder(ctx, orderId)
	if err != nil {
		logger.Errorf("checkout: load order %s: %v", orderId, err)
		return model.CheckoutCaptureRes{}, errors.Wrap(err, ecode.PaymentErr, "")
	}
	planCode, userId, ok := payment.ParseReference(pending.Reference)
	if !ok {
		return model.CheckoutCaptureRes{}, errors.WithCode(ecode.PaymentErr, "unknown order")
	}
	if userId != session.UserId {
		return model.CheckoutCaptureRes{}, errors.WithCode(ecode.ForbiddenErr, "")
	}

	order, err := s.pay.CaptureOrder(ctx, orderId)
	if err != nil {
		logger.Errorf("checkout: capture order %s: %v", orderId, err)
		return model.CheckoutCaptureRes{}, errors.Wrap(err, ecode.PaymentErr, "")
	}
	if order.Status != payment.StatusCompleted {
		return model.CheckoutCaptureRes{}, errors.WithCode(ecode.PaymentErr, "payment was not completed")
	}

	value := order.Amount
	if value <= 0 {
		value = s.plans.PlanLookup(ctx).ValueOf(planCode)
	}
	now := utils.Now()
	contract := entity.Contract{
		Id:           s.node.GenSnowID(),
		ClientName:   session.Email,
		ClientEmail:  session.Email,
		UserId:       &userId,
		Plan:         planCode,
		MonthlyValue: value,
		Status:       consts.ContractActive,
		StartDate:    &now,
		PaymentRef:   orderId,
		Notes:        "paypal",
	}
	if u, err := s.users.UserGetById(ctx, userId); err == nil && u.Name != "" {
		contract.ClientName = u.Name
	}
	if err := s.contracts.ContractCreate(ctx, &contract); err != nil {
		logger.Errorf("checkout: order %s captured but contract was not saved: %v", orderId, err)
		return model.CheckoutCaptureRes{}, writeErr(err)
	}
	if err := s.users.UserUpdate(ctx, userId, map[string]any{"plan": planCode, "is_active": true}); err != nil {
		logger.Errorf("checkout: upgrade %s to %s: %v", userId, planCode, err)
		return model.CheckoutCaptureRes{}, writeErr(err)
	}
	return model.CheckoutCaptureRes{Contract: contract, Plan: planCode}, nil
}

var _ PaymentGateway = (*payment.PayPal)(nil)
