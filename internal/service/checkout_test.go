package service

import (
	"context"
	"errors"
	"testing"

	"robodesk/internal/consts"
	"robodesk/internal/dao/query"
	"robodesk/internal/model"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayment struct {
	orders   map[string]payment.OrderReq
	status   string
	captures int
	fail     error
}

func newFakePayment() *fakePayment {
	return &fakePayment{orders: map[string]payment.OrderReq{}, status: payment.StatusCompleted}
}

func (f *fakePayment) CreateOrder(_ context.Context, req payment.OrderReq) (*payment.Order, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	id := "ORDER-" + req.Reference
	f.orders[id] = req
	return &payment.Order{Id: id, Status: "CREATED", Reference: req.Reference, ApproveURL: "https://paypal.test/approve/" + id}, nil
}

func (f *fakePayment) GetOrder(_ context.Context, orderId string) (*payment.Order, error) {
	req, ok := f.orders[orderId]
	if !ok {
		return nil, errors.New("unknown order")
	}
	return &payment.Order{Id: orderId, Status: "APPROVED", Reference: req.Reference, Amount: req.Amount, Currency: req.Currency}, nil
}

func (f *fakePayment) CaptureOrder(_ context.Context, orderId string) (*payment.Order, error) {
	f.captures++
	req, ok := f.orders[orderId]
	if !ok {
		return nil, errors.New("unknown order")
	}
	return &payment.Order{Id: orderId, Status: f.status, Reference: req.Reference, Amount: req.Amount, Currency: req.Currency}, nil
}

func TestCheckout(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	pay := newFakePayment()
	users := query.NewUserDao(gw)
	svc := NewCheckoutService(pay, query.NewContractDao(gw), users, offlinePlans(store), testNode, "BRL")
	ctx := context.Background()
	session := model.Session{UserId: "u-2", Email: "bruno@robodesk.io"}

	_, err := svc.CheckoutStart(ctx, session, consts.PlanFree)
	requireCode(t, err, ecode.ValidateErr)
	_, err = svc.CheckoutStart(ctx, session, "platinum")
	requireCode(t, err, ecode.ValidateErr)

	start, err := svc.CheckoutStart(ctx, session, consts.PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, "https://paypal.test/approve/ORDER-premium:u-2", start.ApproveURL)
	assert.InDelta(t, 397, start.Amount, 1e-9)
	assert.Equal(t, "BRL", start.Currency)

	// 其它会员不能确认别人的订单
	_, err = svc.CheckoutCapture(ctx, model.Session{UserId: "u-1"}, start.OrderId)
	requireCode(t, err, ecode.ForbiddenErr)
	assert.Zero(t, pay.captures)

	res, err := svc.CheckoutCapture(ctx, session, start.OrderId)
	require.NoError(t, err)
	assert.Equal(t, consts.PlanPremium, res.Plan)
	assert.Equal(t, consts.ContractActive, res.Contract.Status)
	assert.Equal(t, "Bruno Lima", res.Contract.ClientName)
	assert.InDelta(t, 397, res.Contract.MonthlyValue, 1e-9)

	u, err := users.UserGetById(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, consts.PlanPremium, u.Plan)

	captures := pay.captures
	again, err := svc.CheckoutCapture(ctx, session, start.OrderId)
	require.NoError(t, err)
	assert.Equal(t, res.Contract.Id, again.Contract.Id)
	assert.Equal(t, captures, pay.captures)
}

func TestCheckout_Failures(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	ctx := context.Background()
	session := model.Session{UserId: "u-2"}

	disabled := NewCheckoutService(nil, query.NewContractDao(gw), query.NewUserDao(gw), offlinePlans(store), testNode, "BRL")
	_, err := disabled.CheckoutStart(ctx, session, consts.PlanPro)
	requireCode(t, err, ecode.PaymentErr)
	_, err = disabled.CheckoutCapture(ctx, session, "ORDER-1")
	requireCode(t, err, ecode.PaymentErr)

	pay := newFakePayment()
	svc := NewCheckoutService(pay, query.NewContractDao(gw), query.NewUserDao(gw), offlinePlans(store), testNode, "BRL")
	start, err := svc.CheckoutStart(ctx, session, consts.PlanPro)
	require.NoError(t, err)

	pay.status = "PAYER_ACTION_REQUIRED"
	_, err = svc.CheckoutCapture(ctx, session, start.OrderId)
	requireCode(t, err, ecode.PaymentErr)

	_, err = svc.CheckoutCapture(ctx, session, "ORDER-unknown")
	requireCode(t, err, ecode.PaymentErr)

	pay.fail = errors.New("paypal down")
	_, err = svc.CheckoutStart(ctx, session, consts.PlanPro)
	requireCode(t, err, ecode.PaymentErr)
}
