package dao

import (
	"context"

	"robodesk/internal/model/entity"
)

type SolutionDao interface {
	SolutionList(ctx context.Context) ([]entity.SolutionRequest, error)
	SolutionCreate(ctx context.Context, req *entity.SolutionRequest) error
	SolutionUpdate(ctx context.Context, id int64, patch map[string]any) error
	SolutionDelete(ctx context.Context, id int64) error
}
