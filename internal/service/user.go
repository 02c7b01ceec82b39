package service

import (
	"context"
	"strings"
	"time"

	"robodesk/internal/cache"
	"robodesk/internal/collection"
	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/gateway"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/logger"
	"robodesk/utils"
)

type UserService interface {
	UserList(ctx context.Context, req model.UserListReq) model.UserListRes
	UserGet(ctx context.Context, userId string) (entity.User, error)
	UserUpdate(ctx context.Context, userId string, req model.UserUpdateReq) error
	UserDelete(ctx context.Context, userId string) error
	// 当前会员的资料，同时记录登录时间
	UserMe(ctx context.Context, session model.Session) (model.MeRes, error)
}

type userService struct {
	d     dao.UserDao
	plans PlanService
	store cache.SnapshotStore
}

func NewUserService(d dao.UserDao, plans PlanService, store cache.SnapshotStore) UserService {
	return &userService{
		d:     d,
		plans: plans,
		store: store,
	}
}

var userSortKeys = collection.Keys[entity.User]{
	"name":          collection.Text(func(u entity.User) string { return u.Name }),
	"email":         collection.Text(func(u entity.User) string { return u.Email }),
	"plan":          collection.Text(func(u entity.User) string { return u.Plan }),
	"created_at":    collection.Time(func(u entity.User) *time.Time { return u.CreatedAt.Ptr() }),
	"last_login_at": collection.Time(func(u entity.User) *time.Time { return u.LastLoginAt.Ptr() }),
}

func userSearchFields(u entity.User) []string { return []string{u.Name, u.Email} }

func (s *userService) UserList(ctx context.Context, req model.UserListReq) model.UserListRes {
	users, stale, notice := snapshotRead(ctx, s.store, consts.TableProfiles, s.d.UserList, nil)

	filtered := collection.Where(collection.Search(users, req.Search, userSearchFields),
		collection.Equals(req.Plan, func(u entity.User) string { return u.Plan }),
		collection.ActiveOnly(req.ShowInactive, func(u entity.User) bool { return u.IsActive }),
	)
	key, dir := sortOf(req.ListReq, "created_at")
	items := collection.Sort(filtered, userSortKeys.Get(key, "created_at"), dir)

	var res model.UserListRes
	res.Items = items
	res.Total = len(items)
	res.Stale = stale
	res.Notice = notice
	res.Stats = s.stats(ctx, users)
	return res
}

// stats 基于全部会员，不受当前过滤条件影响
func (s *userService) stats(ctx context.Context, users []entity.User) model.UserStats {
	lookup := s.plans.PlanLookup(ctx)
	isActive := func(u entity.User) bool { return u.IsActive }
	plan := func(u entity.User) string { return u.Plan }
	value := func(u entity.User) float64 { return lookup.ValueOf(u.Plan) }

	return model.UserStats{
		ByPlan:    collection.CountBy(users, plan),
		Active:    collection.Count(users, isActive),
		Inactive:  len(users) - collection.Count(users, isActive),
		MRR:       collection.Sum(users, value, isActive),
		MRRByPlan: collection.SumBy(collection.Where(users, isActive), plan, value),
	}
}

func (s *userService) UserGet(ctx context.Context, userId string) (entity.User, error) {
	u, err := s.d.UserGetById(ctx, userId)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return entity.User{}, errors.Wrap(err, ecode.NotFoundErr, "")
		}
		return entity.User{}, errors.Wrap(err, ecode.Unknown, consts.StaleNotice)
	}
	return u, nil
}

func (s *userService) UserUpdate(ctx context.Context, userId string, req model.UserUpdateReq) error {
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	setIf(patch, "phone", req.Phone)
	setIf(patch, "plan", req.Plan)
	setIf(patch, "is_active", req.IsActive)
	setIf(patch, "is_admin", req.IsAdmin)
	if len(patch) == 0 {
		return emptyPatch()
	}
	return writeErr(s.d.UserUpdate(ctx, userId, patch))
}

func (s *userService) UserDelete(ctx context.Context, userId string) error {
	return writeErr(s.d.UserDelete(ctx, userId))
}

func (s *userService) UserMe(ctx context.Context, session model.Session) (model.MeRes, error) {
	lookup := s.plans.PlanLookup(ctx)
	u, err := s.d.UserGetById(ctx, session.UserId)
	switch {
	case err == nil:
		now := time.Now()
		if terr := s.d.UserTouchLogin(ctx, session.UserId, now); terr != nil {
			logger.Warnf("user: touch last login %s: %v", session.UserId, terr)
		} else {
			jt := utils.JsonTime(now)
			u.LastLoginAt = &jt
		}
	case errors.Is(err, gateway.ErrNotFound):
		return model.MeRes{}, errors.Wrap(err, ecode.NotFoundErr, "profile not found")
	default:
		// 资料读取失败，使用会话中的信息，按免费套餐处理
		logger.Warnf("user: load profile %s: %v", session.UserId, err)
		u = entity.User{Id: session.UserId, Email: session.Email, Plan: consts.PlanFree, IsActive: true, IsAdmin: session.IsAdmin}
		tier, _ := lookup.TierOf(u.Plan)
		return model.MeRes{User: u, PlanName: lookup.NameOf(u.Plan), Tier: tier, Stale: true, Notice: consts.StaleNotice}, nil
	}
	tier, _ := lookup.TierOf(u.Plan)
	return model.MeRes{User: u, PlanName: lookup.NameOf(u.Plan), Tier: tier}, nil
}

// sortOf 没有指定排序字段时按默认字段倒序
func sortOf(req model.ListReq, fallback string) (string, collection.Direction) {
	if req.SortBy == "" {
		return fallback, collection.Desc
	}
	return req.SortBy, collection.ParseDirection(req.Order)
}
