package query

import (
	"context"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model/entity"
)

var _ dao.PlanDao = (*planDao)(nil)

type planDao struct {
	gw gateway.Gateway
}

func NewPlanDao(gw gateway.Gateway) *planDao {
	return &planDao{gw: gw}
}

func (p *planDao) PlanList(ctx context.Context) ([]entity.Plan, error) {
	var plans []entity.Plan
	err := p.gw.Select(ctx, consts.TablePlans, gateway.Query{
		Filters: gateway.Filter{"is_active": true},
		Order:   []gateway.Order{{Column: "sort"}, {Column: "tier"}},
	}, &plans)
	return plans, err
}
