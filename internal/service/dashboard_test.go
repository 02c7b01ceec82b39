package service

import (
	"context"
	"testing"
	"time"

	"robodesk/internal/collection"
	"robodesk/internal/consts"
	"robodesk/internal/dao/query"
	"robodesk/internal/gateway"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/pkg/errors/ecode"
	"robodesk/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonTime(t time.Time) *utils.JsonTime {
	jt := utils.JsonTime(t)
	return &jt
}

func TestContractService(t *testing.T) {
	gw := newGateway(t)
	store := newStore()
	svc := NewContractService(query.NewContractDao(gw), store, testNode)
	ctx := context.Background()

	a, err := svc.ContractCreate(ctx, model.ContractCreateReq{ClientName: "Ana", ClientEmail: "ANA@x.com", Plan: consts.PlanPro, MonthlyValue: 100, Status: consts.ContractActive})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", a.ClientEmail)
	assert.NotNil(t, a.StartDate)

	_, err = svc.ContractCreate(ctx, model.ContractCreateReq{ClientName: "Bruno", Plan: consts.PlanPremium, MonthlyValue: 200, Status: consts.ContractActive})
	require.NoError(t, err)
	c, err := svc.ContractCreate(ctx, model.ContractCreateReq{ClientName: "Carla", Plan: consts.PlanBasic, MonthlyValue: 50})
	require.NoError(t, err)
	assert.Equal(t, consts.ContractPending, c.Status)

	sum := svc.ContractSummary(ctx)
	assert.Equal(t, 2, sum.Active)
	assert.InDelta(t, 300, sum.MRR, 1e-9)
	assert.InDelta(t, 3600, sum.AnnualProjection, 1e-9)
	assert.InDelta(t, 150, sum.AverageTicket, 1e-9)
	assert.Equal(t, 1, sum.ByStatus[consts.ContractPending])

	res := svc.ContractList(ctx, model.ContractListReq{Status: consts.ContractActive, ListReq: model.ListReq{SortBy: "monthly_value", Order: "desc"}})
	require.Equal(t, 2, res.Total)
	assert.Equal(t, "Bruno", res.Items[0].ClientName)

	cancelled := consts.ContractCancelled
	require.NoError(t, svc.ContractUpdate(ctx, a.Id, model.ContractUpdateReq{Status: &cancelled}))
	assert.InDelta(t, 200, svc.ContractSummary(ctx).MRR, 1e-9)

	require.NoError(t, svc.ContractDelete(ctx, c.Id))
	requireCode(t, svc.ContractDelete(ctx, c.Id), ecode.NotFoundErr)
	assert.Equal(t, 2, svc.ContractList(ctx, model.ContractListReq{}).Total)
}

func TestCostService(t *testing.T) {
	gw := newGateway(t)
	svc := NewCostService(query.NewCostDao(gw), newStore(), testNode)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.CostCreate(ctx, model.CostCreateReq{Description: "VPS", Category: "infrastructure", Amount: 50, Recurring: true})
	require.NoError(t, err)
	_, err = svc.CostCreate(ctx, model.CostCreateReq{Description: "Ads", Category: "marketing", Amount: 30, Date: jsonTime(now)})
	require.NoError(t, err)
	old, err := svc.CostCreate(ctx, model.CostCreateReq{Description: "Laptop", Category: "other", Amount: 1000, Date: jsonTime(now.AddDate(-1, 0, 0))})
	require.NoError(t, err)

	monthly, stale, _ := svc.CostMonthly(ctx, now)
	assert.False(t, stale)
	assert.InDelta(t, 80, monthly, 1e-9)

	sum := svc.CostSummary(ctx)
	assert.InDelta(t, 1080, sum.Total, 1e-9)
	assert.InDelta(t, 50, sum.MonthlyRecurring, 1e-9)
	assert.InDelta(t, 30, sum.ByCategory["marketing"], 1e-9)

	res := svc.CostList(ctx, model.CostListReq{Recurring: "false"})
	assert.Equal(t, 2, res.Total)
	res = svc.CostList(ctx, model.CostListReq{Recurring: collection.All})
	assert.Equal(t, 3, res.Total)
	// 按日期升序时没有日期的排在最前
	res = svc.CostList(ctx, model.CostListReq{ListReq: model.ListReq{SortBy: "date", Order: "asc"}})
	require.Equal(t, 3, res.Total)
	assert.Equal(t, "VPS", res.Items[0].Description)
	assert.Equal(t, "Laptop", res.Items[1].Description)

	amount := 10.0
	require.NoError(t, svc.CostUpdate(ctx, old.Id, model.CostUpdateReq{Amount: &amount}))
	assert.InDelta(t, 90, svc.CostSummary(ctx).Total, 1e-9)
}

func TestDashboard(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	ctx := context.Background()
	plans := offlinePlans(store)

	require.NoError(t, gw.Insert(ctx, consts.TableContracts, &entity.Contract{Id: 1, ClientName: "A", MonthlyValue: 100, Status: consts.ContractActive}))
	require.NoError(t, gw.Insert(ctx, consts.TableContracts, &entity.Contract{Id: 2, ClientName: "B", MonthlyValue: 200, Status: consts.ContractActive}))
	require.NoError(t, gw.Insert(ctx, consts.TableContracts, &entity.Contract{Id: 3, ClientName: "C", MonthlyValue: 400, Status: consts.ContractCancelled}))
	require.NoError(t, gw.Insert(ctx, consts.TableCosts, &entity.Cost{Id: 1, Description: "VPS", Amount: 50, Recurring: true}))
	require.NoError(t, gw.Insert(ctx, consts.TableCosts, &entity.Cost{Id: 2, Description: "Ads", Amount: 30, Date: jsonTime(time.Now())}))
	require.NoError(t, gw.Insert(ctx, consts.TableSolutionRequests, &entity.SolutionRequest{Id: 1, Name: "x", Status: consts.SolutionNew, Priority: consts.PriorityLow}))
	require.NoError(t, gw.Insert(ctx, consts.TableSolutionRequests, &entity.SolutionRequest{Id: 2, Name: "y", Status: consts.SolutionDone, Priority: consts.PriorityLow}))

	build := func(gw gateway.Gateway) DashboardService {
		return NewDashboardService(
			NewUserService(query.NewUserDao(gw), plans, store),
			NewContractService(query.NewContractDao(gw), store, testNode),
			NewCostService(query.NewCostDao(gw), store, testNode),
			NewSolutionService(query.NewSolutionDao(gw), store, testNode, nil, nil, nil),
		)
	}

	res := build(gw).Dashboard(ctx)
	assert.False(t, res.Stale)
	assert.Empty(t, res.Notices)
	assert.InDelta(t, 300, res.MRR, 1e-9)
	assert.InDelta(t, 80, res.MonthlyCosts, 1e-9)
	assert.InDelta(t, 220, res.Net, 1e-9)
	assert.Equal(t, 2, res.ActiveContracts)
	assert.Equal(t, 3, res.ActiveUsers)
	assert.Equal(t, 2, res.UsersByPlan[consts.PlanPro])
	assert.Equal(t, 1, res.OpenRequests)

	// 后端断开后使用快照
	offline := build(gateway.NewNullGateway()).Dashboard(ctx)
	assert.True(t, offline.Stale)
	assert.Equal(t, []string{consts.StaleNotice}, offline.Notices)
	assert.InDelta(t, 220, offline.Net, 1e-9)
}
