package query

import (
	"context"
	"time"

	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model/entity"
)

var _ dao.UserDao = (*userDao)(nil)

type userDao struct {
	gw gateway.Gateway
}

func NewUserDao(gw gateway.Gateway) *userDao {
	return &userDao{
		gw: gw,
	}
}

func (u *userDao) UserList(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := u.gw.Select(ctx, consts.TableProfiles, gateway.Query{
		Order: []gateway.Order{{Column: "created_at", Desc: true}},
	}, &users)
	return users, err
}

func (u *userDao) UserGetById(ctx context.Context, userId string) (entity.User, error) {
	var users []entity.User
	err := u.gw.Select(ctx, consts.TableProfiles, gateway.Query{Filters: gateway.Filter{"id": userId}, Limit: 1}, &users)
	if err != nil {
		return entity.User{}, err
	}
	if len(users) == 0 {
		return entity.User{}, gateway.ErrNotFound
	}
	return users[0], nil
}

func (u *userDao) UserUpdate(ctx context.Context, userId string, patch map[string]any) error {
	return u.gw.Update(ctx, consts.TableProfiles, userId, patch)
}

func (u *userDao) UserDelete(ctx context.Context, userId string) error {
	return u.gw.Delete(ctx, consts.TableProfiles, userId)
}

func (u *userDao) UserTouchLogin(ctx context.Context, userId string, at time.Time) error {
	return u.gw.Update(ctx, consts.TableProfiles, userId, map[string]any{"last_login_at": at})
}
