package dao

import (
	"context"

	"robodesk/internal/model/entity"
)

type PlanDao interface {
	// 启用的套餐，按sort排序
	PlanList(ctx context.Context) ([]entity.Plan, error)
}
