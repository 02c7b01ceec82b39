package dao

import (
	"context"
	"time"

	"robodesk/internal/model/entity"
)

type UserDao interface {
	// 获取全部会员资料
	UserList(ctx context.Context) ([]entity.User, error)
	// 根据id获取会员
	UserGetById(ctx context.Context, userId string) (entity.User, error)
	// 更新会员字段
	UserUpdate(ctx context.Context, userId string, patch map[string]any) error
	// 删除会员资料
	UserDelete(ctx context.Context, userId string) error
	// 记录最后登录时间
	UserTouchLogin(ctx context.Context, userId string, at time.Time) error
}
