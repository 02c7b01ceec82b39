package service

import (
	"context"
	"sync"
	"time"

	"robodesk/internal/model"
	"robodesk/utils"
)

type DashboardService interface {
	// 管理后台首页汇总
	Dashboard(ctx context.Context) model.DashboardRes
}

type dashboardService struct {
	users     UserService
	contracts ContractService
	costs     CostService
	solutions SolutionService
	now       func() time.Time
}

func NewDashboardService(users UserService, contracts ContractService, costs CostService, solutions SolutionService) DashboardService {
	return &dashboardService{
		users:     users,
		contracts: contracts,
		costs:     costs,
		solutions: solutions,
		now:       time.Now,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context) model.DashboardRes {
	var (
		wg        sync.WaitGroup
		users     model.UserListRes
		contracts model.ContractSummary
		costs     float64
		costStale bool
		costNote  string
		solutions model.SolutionSummary
		solStale  bool
		solNote   string
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		users = s.users.UserList(ctx, model.UserListReq{ShowInactive: true})
	}()
	go func() {
		defer wg.Done()
		contracts = s.contracts.ContractSummary(ctx)
	}()
	go func() {
		defer wg.Done()
		costs, costStale, costNote = s.costs.CostMonthly(ctx, s.now())
	}()
	go func() {
		defer wg.Done()
		solutions, solStale, solNote = s.solutions.SolutionSummary(ctx)
	}()
	wg.Wait()

	res := model.DashboardRes{
		MRR:             contracts.MRR,
		MonthlyCosts:    costs,
		Net:             contracts.MRR - costs,
		ActiveContracts: contracts.Active,
		ActiveUsers:     users.Stats.Active,
		UsersByPlan:     users.Stats.ByPlan,
		OpenRequests:    solutions.Open,
	}
	for _, part := range []struct {
		stale  bool
		notice string
	}{
		{users.Stale, users.Notice},
		{contracts.Stale, contracts.Notice},
		{costStale, costNote},
		{solStale, solNote},
	} {
		if !part.stale {
			continue
		}
		res.Stale = true
		if part.notice != "" && !utils.ContainsStr(res.Notices, part.notice) {
			res.Notices = append(res.Notices, part.notice)
		}
	}
	return res
}
