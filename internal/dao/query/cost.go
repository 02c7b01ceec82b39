package query

import (
	"context"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model/entity"
)

var _ dao.CostDao = (*costDao)(nil)

type costDao struct {
	gw gateway.Gateway
}

func NewCostDao(gw gateway.Gateway) *costDao {
	return &costDao{gw: gw}
}

func (c *costDao) CostList(ctx context.Context) ([]entity.Cost, error) {
	var costs []entity.Cost
	err := c.gw.Select(ctx, consts.TableCosts, gateway.Query{
		Order: []gateway.Order{{Column: "date", Desc: true}},
	}, &costs)
	return costs, err
}

func (c *costDao) CostCreate(ctx context.Context, cost *entity.Cost) error {
	return c.gw.Insert(ctx, consts.TableCosts, cost)
}

func (c *costDao) CostUpdate(ctx context.Context, id int64, patch map[string]any) error {
	return c.gw.Update(ctx, consts.TableCosts, id, patch)
}

func (c *costDao) CostDelete(ctx context.Context, id int64) error {
	return c.gw.Delete(ctx, consts.TableCosts, id)
}
