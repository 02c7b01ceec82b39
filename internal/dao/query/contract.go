package query

import (
	"context"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model/entity"
)

var _ dao.ContractDao = (*contractDao)(nil)

type contractDao struct {
	gw gateway.Gateway
}

func NewContractDao(gw gateway.Gateway) *contractDao {
	return &contractDao{gw: gw}
}

func (c *contractDao) ContractList(ctx context.Context) ([]entity.Contract, error) {
	var contracts []entity.Contract
	err := c.gw.Select(ctx, consts.TableContracts, gateway.Query{
		Order: []gateway.Order{{Column: "created_at", Desc: true}},
	}, &contracts)
	return contracts, err
}

func (c *contractDao) ContractCreate(ctx context.Context, contract *entity.Contract) error {
	return c.gw.Insert(ctx, consts.TableContracts, contract)
}

func (c *contractDao) ContractUpdate(ctx context.Context, id int64, patch map[string]any) error {
	return c.gw.Update(ctx, consts.TableContracts, id, patch)
}

func (c *contractDao) ContractDelete(ctx context.Context, id int64) error {
	return c.gw.Delete(ctx, consts.TableContracts, id)
}

func (c *contractDao) ContractGetByPaymentRef(ctx context.Context, ref string) (entity.Contract, error) {
	var contracts []entity.Contract
	err := c.gw.Select(ctx, consts.TableContracts, gateway.Query{Filters: gateway.Filter{"payment_ref": ref}, Limit: 1}, &contracts)
	if err != nil {
		return entity.Contract{}, err
	}
	if len(contracts) == 0 {
		return entity.Contract{}, gateway.ErrNotFound
	}
	return contracts[0], nil
}
