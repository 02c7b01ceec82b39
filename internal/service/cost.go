package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"robodesk/internal/cache"
	"robodesk/internal/collection"
	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/utils/uuid"
)

type CostService interface {
	CostList(ctx context.Context, req model.CostListReq) model.CostListRes
	CostCreate(ctx context.Context, req model.CostCreateReq) (entity.Cost, error)
	CostUpdate(ctx context.Context, id int64, req model.CostUpdateReq) error
	CostDelete(ctx context.Context, id int64) error
	CostSummary(ctx context.Context) model.CostSummary
	// 本月成本：每月重复的成本 + 日期在本月的一次性成本
	CostMonthly(ctx context.Context, now time.Time) (total float64, stale bool, notice string)
}

type costService struct {
	d     dao.CostDao
	store cache.SnapshotStore
	node  *uuid.SnowNode
}

func NewCostService(d dao.CostDao, store cache.SnapshotStore, node *uuid.SnowNode) CostService {
	return &costService{d: d, store: store, node: node}
}

var costSortKeys = collection.Keys[entity.Cost]{
	"description": collection.Text(func(c entity.Cost) string { return c.Description }),
	"amount":      collection.Number(func(c entity.Cost) float64 { return c.Amount }),
	"date":        collection.Time(func(c entity.Cost) *time.Time { return c.Date.Ptr() }),
	"category":    collection.Text(func(c entity.Cost) string { return c.Category }),
}

func (s *costService) load(ctx context.Context) ([]entity.Cost, bool, string) {
	return snapshotRead(ctx, s.store, consts.TableCosts, s.d.CostList, nil)
}

func (s *costService) CostList(ctx context.Context, req model.CostListReq) model.CostListRes {
	costs, stale, notice := s.load(ctx)

	filtered := collection.Where(
		collection.Search(costs, req.Search, func(c entity.Cost) []string { return []string{c.Description} }),
		collection.Equals(req.Category, func(c entity.Cost) string { return c.Category }),
		collection.Equals(req.Recurring, func(c entity.Cost) string { return strconv.FormatBool(c.Recurring) }),
	)
	key, dir := sortOf(req.ListReq, "date")
	items := collection.Sort(filtered, costSortKeys.Get(key, "date"), dir)

	var res model.CostListRes
	res.Items = items
	res.Total = len(items)
	res.Stale = stale
	res.Notice = notice
	res.Summary = summarizeCosts(costs)
	res.Summary.Stale = stale
	res.Summary.Notice = notice
	return res
}

func (s *costService) CostSummary(ctx context.Context) model.CostSummary {
	costs, stale, notice := s.load(ctx)
	sum := summarizeCosts(costs)
	sum.Stale = stale
	sum.Notice = notice
	return sum
}

func summarizeCosts(costs []entity.Cost) model.CostSummary {
	amount := func(c entity.Cost) float64 { return c.Amount }
	return model.CostSummary{
		ByCategory:       collection.SumBy(costs, func(c entity.Cost) string { return c.Category }, amount),
		Total:            collection.Sum(costs, amount),
		MonthlyRecurring: collection.Sum(costs, amount, func(c entity.Cost) bool { return c.Recurring }),
	}
}

func (s *costService) CostMonthly(ctx context.Context, now time.Time) (float64, bool, string) {
	costs, stale, notice := s.load(ctx)
	return monthlyCosts(costs, now), stale, notice
}

func monthlyCosts(costs []entity.Cost, now time.Time) float64 {
	from := startOfMonth(now)
	to := from.AddDate(0, 1, 0)
	inMonth := func(c entity.Cost) bool {
		if c.Recurring {
			return true
		}
		d := c.Date.Ptr()
		return d != nil && !d.Before(from) && d.Before(to)
	}
	return collection.Sum(costs, func(c entity.Cost) float64 { return c.Amount }, inMonth)
}

func (s *costService) CostCreate(ctx context.Context, req model.CostCreateReq) (entity.Cost, error) {
	c := entity.Cost{
		Id:          s.node.GenSnowID(),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Recurring:   req.Recurring,
	}
	if err := s.d.CostCreate(ctx, &c); err != nil {
		return entity.Cost{}, writeErr(err)
	}
	return c, nil
}

func (s *costService) CostUpdate(ctx context.Context, id int64, req model.CostUpdateReq) error {
	patch := map[string]any{}
	setIf(patch, "description", req.Description)
	setIf(patch, "category", req.Category)
	setIf(patch, "amount", req.Amount)
	setIf(patch, "date", req.Date)
	setIf(patch, "recurring", req.Recurring)
	if len(patch) == 0 {
		return emptyPatch()
	}
	return writeErr(s.d.CostUpdate(ctx, id, patch))
}

func (s *costService) CostDelete(ctx context.Context, id int64) error {
	return writeErr(s.d.CostDelete(ctx, id))
}
