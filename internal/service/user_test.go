package service

import (
	"context"
	"testing"

	"robodesk/internal/consts"
	"robodesk/internal/dao/query"
	"robodesk/internal/gateway"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/pkg/errors/ecode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, gw gateway.Gateway) {
	t.Helper()
	ctx := context.Background()
	for _, u := range []entity.User{
		{Id: "u-1", Name: "Ana Souza", Email: "ana@robodesk.io", Plan: consts.PlanPro, IsActive: true},
		{Id: "u-2", Name: "Bruno Lima", Email: "bruno@robodesk.io", Plan: consts.PlanBasic, IsActive: true},
		{Id: "u-3", Name: "Carla Dias", Email: "carla@robodesk.io", Plan: consts.PlanPro, IsActive: false},
		{Id: "u-4", Name: "Diego Ramos", Email: "diego@robodesk.io", Plan: consts.PlanFree, IsActive: true},
	} {
		u := u
		require.NoError(t, gw.Insert(ctx, consts.TableProfiles, &u))
	}
}

func TestUserList_FiltersAndStats(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	svc := NewUserService(query.NewUserDao(gw), offlinePlans(store), store)
	ctx := context.Background()

	res := svc.UserList(ctx, model.UserListReq{})
	assert.False(t, res.Stale)
	assert.Equal(t, 3, res.Total)
	for _, u := range res.Items {
		assert.True(t, u.IsActive)
	}

	// 统计基于全部会员
	assert.Equal(t, 3, res.Stats.Active)
	assert.Equal(t, 1, res.Stats.Inactive)
	assert.Equal(t, 2, res.Stats.ByPlan[consts.PlanPro])
	assert.InDelta(t, 197+97, res.Stats.MRR, 1e-9)
	assert.InDelta(t, 197, res.Stats.MRRByPlan[consts.PlanPro], 1e-9)

	res = svc.UserList(ctx, model.UserListReq{ShowInactive: true, Plan: consts.PlanPro})
	assert.Equal(t, 2, res.Total)

	res = svc.UserList(ctx, model.UserListReq{Plan: consts.PlanPro})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "u-1", res.Items[0].Id)

	res = svc.UserList(ctx, model.UserListReq{ListReq: model.ListReq{Search: "ana"}})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Ana Souza", res.Items[0].Name)

	res = svc.UserList(ctx, model.UserListReq{ListReq: model.ListReq{SortBy: "name", Order: "asc"}, ShowInactive: true})
	require.Equal(t, 4, res.Total)
	assert.Equal(t, []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Diego Ramos"},
		[]string{res.Items[0].Name, res.Items[1].Name, res.Items[2].Name, res.Items[3].Name})
}

func TestUserList_StaleSnapshot(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	ctx := context.Background()

	online := NewUserService(query.NewUserDao(gw), offlinePlans(store), store)
	require.False(t, online.UserList(ctx, model.UserListReq{}).Stale)

	offline := NewUserService(query.NewUserDao(gateway.NewNullGateway()), offlinePlans(store), store)
	res := offline.UserList(ctx, model.UserListReq{})
	assert.True(t, res.Stale)
	assert.Equal(t, consts.StaleNotice, res.Notice)
	assert.Equal(t, 3, res.Total)

	empty := NewUserService(query.NewUserDao(gateway.NewNullGateway()), offlinePlans(newStore()), newStore())
	res = empty.UserList(ctx, model.UserListReq{})
	assert.True(t, res.Stale)
	assert.NotNil(t, res.Items)
	assert.Zero(t, res.Total)
}

func TestUserWrites(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	svc := NewUserService(query.NewUserDao(gw), offlinePlans(store), store)
	ctx := context.Background()

	plan := consts.PlanPremium
	require.NoError(t, svc.UserUpdate(ctx, "u-2", model.UserUpdateReq{Plan: &plan}))
	u, err := svc.UserGet(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, consts.PlanPremium, u.Plan)

	requireCode(t, svc.UserUpdate(ctx, "u-2", model.UserUpdateReq{}), ecode.ValidateErr)
	requireCode(t, svc.UserUpdate(ctx, "missing", model.UserUpdateReq{Plan: &plan}), ecode.NotFoundErr)

	require.NoError(t, svc.UserDelete(ctx, "u-4"))
	_, err = svc.UserGet(ctx, "u-4")
	requireCode(t, err, ecode.NotFoundErr)

	offline := NewUserService(query.NewUserDao(gateway.NewNullGateway()), offlinePlans(store), store)
	requireCode(t, offline.UserUpdate(ctx, "u-1", model.UserUpdateReq{Plan: &plan}), ecode.SaveErr)
	requireCode(t, offline.UserDelete(ctx, "u-1"), ecode.SaveErr)
}

func TestUserMe(t *testing.T) {
	gw := newGateway(t)
	seedUsers(t, gw)
	store := newStore()
	ctx := context.Background()

	svc := NewUserService(query.NewUserDao(gw), offlinePlans(store), store)
	me, err := svc.UserMe(ctx, model.Session{UserId: "u-1", Email: "ana@robodesk.io"})
	require.NoError(t, err)
	assert.Equal(t, "Pro", me.PlanName)
	assert.Equal(t, 2, me.Tier)
	assert.NotNil(t, me.LastLoginAt)
	assert.False(t, me.Stale)

	_, err = svc.UserMe(ctx, model.Session{UserId: "nobody"})
	requireCode(t, err, ecode.NotFoundErr)

	offline := NewUserService(query.NewUserDao(gateway.NewNullGateway()), offlinePlans(store), store)
	me, err = offline.UserMe(ctx, model.Session{UserId: "u-9", Email: "x@robodesk.io", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, me.Stale)
	assert.Equal(t, consts.PlanFree, me.Plan)
	assert.True(t, me.IsAdmin)
}

func TestPlanService(t *testing.T) {
	ctx := context.Background()
	plans := offlinePlans(newStore())

	res := plans.PlanList(ctx)
	assert.True(t, res.Stale)
	assert.Equal(t, consts.OfflineNotice, res.Notice)
	require.Len(t, res.Items, 4)

	lookup := plans.PlanLookup(ctx)
	assert.InDelta(t, 197, lookup.ValueOf(consts.PlanPro), 1e-9)
	assert.Zero(t, lookup.ValueOf("platinum"))
	_, ok := lookup.TierOf("platinum")
	assert.False(t, ok)
	assert.True(t, lookup.Allows(consts.PlanPremium, consts.PlanPro))
	assert.True(t, lookup.Allows(consts.PlanPro, consts.PlanPro))
	assert.False(t, lookup.Allows(consts.PlanBasic, consts.PlanPro))
	assert.False(t, lookup.Allows("platinum", consts.PlanFree))
	assert.Equal(t, "platinum", lookup.NameOf("platinum"))

	gw := newGateway(t)
	require.NoError(t, gw.Insert(ctx, consts.TablePlans, &entity.Plan{Id: 1, Code: "starter", Name: "Starter", MonthlyPrice: 49, IsActive: true}))
	online := NewPlanService(query.NewPlanDao(gw), newStore(), nil)
	res = online.PlanList(ctx)
	assert.False(t, res.Stale)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "starter", res.Items[0].Code)
}
