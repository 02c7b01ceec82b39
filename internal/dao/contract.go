package dao

import (
	"context"

	"robodesk/internal/model/entity"
)

type ContractDao interface {
	ContractList(ctx context.Context) ([]entity.Contract, error)
	ContractCreate(ctx context.Context, contract *entity.Contract) error
	ContractUpdate(ctx context.Context, id int64, patch map[string]any) error
	ContractDelete(ctx context.Context, id int64) error
	// 通过支付单号查找，避免同一笔订单重复生成合同
	ContractGetByPaymentRef(ctx context.Context, ref string) (entity.Contract, error)
}
