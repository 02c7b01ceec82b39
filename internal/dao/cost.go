package dao

import (
	"context"

	"robodesk/internal/model/entity"
)

type CostDao interface {
	CostList(ctx context.Context) ([]entity.Cost, error)
	CostCreate(ctx context.Context, cost *entity.Cost) error
	CostUpdate(ctx context.Context, id int64, patch map[string]any) error
	CostDelete(ctx context.Context, id int64) error
}
