package dao

import (
	"context"

	"robodesk/internal/model/entity"
)

type RobotDao interface {
	RobotList(ctx context.Context) ([]entity.Robot, error)
	RobotGetById(ctx context.Context, id int64) (entity.Robot, error)
	RobotCreate(ctx context.Context, robot *entity.Robot) error
	RobotUpdate(ctx context.Context, id int64, patch map[string]any) error
	RobotDelete(ctx context.Context, id int64) error
	// 下载记录
	DownloadLogCreate(ctx context.Context, log *entity.DownloadLog) error
}
