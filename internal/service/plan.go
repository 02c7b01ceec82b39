package service

import (
	"context"

	"robodesk/conf"
	"robodesk/internal/cache"
	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

type PlanService interface {
	// 公开的套餐目录，后端不可用时使用配置中的目录
	PlanList(ctx context.Context) model.ListRes[entity.Plan]
	// 套餐代码到套餐的映射，用于价格和等级查询
	PlanLookup(ctx context.Context) PlanLookup
}

type planService struct {
	d       dao.PlanDao
	store   cache.SnapshotStore
	catalog []entity.Plan
}

func NewPlanService(d dao.PlanDao, store cache.SnapshotStore, catalog []conf.PlanConfig) PlanService {
	return &planService{
		d:       d,
		store:   store,
		catalog: catalogPlans(catalog),
	}
}

func (p *planService) PlanList(ctx context.Context) model.ListRes[entity.Plan] {
	plans, stale, notice := snapshotRead(ctx, p.store, consts.TablePlans, p.d.PlanList, p.catalog)
	return model.ListRes[entity.Plan]{Items: plans, Total: len(plans), Stale: stale, Notice: notice}
}

func (p *planService) PlanLookup(ctx context.Context) PlanLookup {
	plans := p.PlanList(ctx).Items
	lookup := make(PlanLookup, len(plans))
	for _, plan := range plans {
		lookup[plan.Code] = plan
	}
	return lookup
}

// PlanLookup 套餐代码 -> 套餐
type PlanLookup map[string]entity.Plan

// ValueOf 月费，未知套餐返回0
func (l PlanLookup) ValueOf(code string) float64 {
	return l[code].MonthlyPrice
}

// TierOf 套餐等级，未知套餐返回false
func (l PlanLookup) TierOf(code string) (int, bool) {
	plan, ok := l[code]
	return plan.Tier, ok
}

func (l PlanLookup) NameOf(code string) string {
	if plan, ok := l[code]; ok {
		return plan.Name
	}
	return code
}

// Allows 会员套餐是否达到要求的套餐
func (l PlanLookup) Allows(memberPlan, required string) bool {
	have, ok := l.TierOf(memberPlan)
	if !ok {
		return false
	}
	need, ok := l.TierOf(required)
	if !ok {
		return false
	}
	return have >= need
}

func catalogPlans(cfg []conf.PlanConfig) []entity.Plan {
	if len(cfg) == 0 {
		cfg = defaultCatalog
	}
	plans := make([]entity.Plan, 0, len(cfg))
	for i, c := range cfg {
		features, _ := json.Marshal(c.Features)
		plans = append(plans, entity.Plan{
			Id:           int64(i + 1),
			Code:         c.Code,
			Name:         c.Name,
			MonthlyPrice: c.MonthlyPrice,
			Tier:         c.Tier,
			Features:     datatypes.JSON(features),
			Highlight:    c.Highlight,
			IsActive:     true,
			Sort:         i + 1,
		})
	}
	return plans
}

var defaultCatalog = []conf.PlanConfig{
	{Code: consts.PlanFree, Name: "Free", Tier: 0, Features: []string{"Position sizing calculator"}},
	{Code: consts.PlanBasic, Name: "Basic", MonthlyPrice: 97, Tier: 1, Features: []string{"Entry robots", "E-mail support"}},
	{Code: consts.PlanPro, Name: "Pro", MonthlyPrice: 197, Tier: 2, Features: []string{"All basic robots", "Scalping robots", "Priority support"}, Highlight: true},
	{Code: consts.PlanPremium, Name: "Premium", MonthlyPrice: 397, Tier: 3, Features: []string{"Every robot", "Custom setups", "1:1 onboarding"}},
}
