package query

import (
	"context"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model/entity"
)

var _ dao.SolutionDao = (*solutionDao)(nil)

type solutionDao struct {
	gw gateway.Gateway
}

func NewSolutionDao(gw gateway.Gateway) *solutionDao {
	return &solutionDao{gw: gw}
}

func (s *solutionDao) SolutionList(ctx context.Context) ([]entity.SolutionRequest, error) {
	var reqs []entity.SolutionRequest
	err := s.gw.Select(ctx, consts.TableSolutionRequests, gateway.Query{
		Order: []gateway.Order{{Column: "created_at", Desc: true}},
	}, &reqs)
	return reqs, err
}

func (s *solutionDao) SolutionCreate(ctx context.Context, req *entity.SolutionRequest) error {
	return s.gw.Insert(ctx, consts.TableSolutionRequests, req)
}

func (s *solutionDao) SolutionUpdate(ctx context.Context, id int64, patch map[string]any) error {
	return s.gw.Update(ctx, consts.TableSolutionRequests, id, patch)
}

func (s *solutionDao) SolutionDelete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, consts.TableSolutionRequests, id)
}
