package query

import (
	"context"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model/entity"
)

var _ dao.RobotDao = (*robotDao)(nil)

type robotDao struct {
	gw gateway.Gateway
}

func NewRobotDao(gw gateway.Gateway) *robotDao {
	return &robotDao{gw: gw}
}

func (r *robotDao) RobotList(ctx context.Context) ([]entity.Robot, error) {
	var robots []entity.Robot
	err := r.gw.Select(ctx, consts.TableRobots, gateway.Query{
		Order: []gateway.Order{{Column: "name"}},
	}, &robots)
	return robots, err
}

func (r *robotDao) RobotGetById(ctx context.Context, id int64) (entity.Robot, error) {
	var robots []entity.Robot
	err := r.gw.Select(ctx, consts.TableRobots, gateway.Query{Filters: gateway.Filter{"id": id}, Limit: 1}, &robots)
	if err != nil {
		return entity.Robot{}, err
	}
	if len(robots) == 0 {
		return entity.Robot{}, gateway.ErrNotFound
	}
	return robots[0], nil
}

func (r *robotDao) RobotCreate(ctx context.Context, robot *entity.Robot) error {
	return r.gw.Insert(ctx, consts.TableRobots, robot)
}

func (r *robotDao) RobotUpdate(ctx context.Context, id int64, patch map[string]any) error {
	return r.gw.Update(ctx, consts.TableRobots, id, patch)
}

func (r *robotDao) RobotDelete(ctx context.Context, id int64) error {
	return r.gw.Delete(ctx, consts.TableRobots, id)
}

func (r *robotDao) DownloadLogCreate(ctx context.Context, log *entity.DownloadLog) error {
	return r.gw.Insert(ctx, consts.TableDownloadLogs, log)
}
