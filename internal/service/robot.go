package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"robodesk/internal/cache"
	"robodesk/internal/collection"
	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/download"
	"robodesk/internal/gateway"
	"robodesk/internal/metrics"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/logger"
	"robodesk/utils"
	"robodesk/utils/uuid"
)

type RobotService interface {
	// 会员可见的机器人，按套餐标记是否可下载
	RobotListForMember(ctx context.Context, session model.Session) model.ListRes[model.RobotItem]
	// 生成有时效的下载链接
	RobotLink(ctx context.Context, session model.Session, robotId int64) (model.RobotLinkRes, error)
	// 校验下载票据，返回要发送的文件
	RobotOpen(ctx context.Context, ticket, ip string) (model.DownloadFile, error)

	RobotList(ctx context.Context, req model.ListReq) model.ListRes[entity.Robot]
	RobotCreate(ctx context.Context, req model.RobotCreateReq) (entity.Robot, error)
	RobotUpdate(ctx context.Context, id int64, req model.RobotUpdateReq) error
	RobotDelete(ctx context.Context, id int64) error
}

type robotService struct {
	d       dao.RobotDao
	users   dao.UserDao
	plans   PlanService
	store   cache.SnapshotStore
	node    *uuid.SnowNode
	issuer  *download.Issuer
	root    string
	baseURL string
}

// NewRobotService root 为机器人文件目录，baseURL 为对外访问地址
func NewRobotService(d dao.RobotDao, users dao.UserDao, plans PlanService, store cache.SnapshotStore,
	node *uuid.SnowNode, issuer *download.Issuer, root, baseURL string) RobotService {
	return &robotService{
		d:       d,
		users:   users,
		plans:   plans,
		store:   store,
		node:    node,
		issuer:  issuer,
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

var robotSortKeys = collection.Keys[entity.Robot]{
	"name":       collection.Text(func(r entity.Robot) string { return r.Name }),
	"platform":   collection.Text(func(r entity.Robot) string { return r.Platform }),
	"min_plan":   collection.Rank(func(r entity.Robot) string { return r.MinPlan }, []string{consts.PlanFree, consts.PlanBasic, consts.PlanPro, consts.PlanPremium}),
	"created_at": collection.Time(func(r entity.Robot) *time.Time { return r.CreatedAt.Ptr() }),
}

func (s *robotService) load(ctx context.Context) ([]entity.Robot, bool, string) {
	return snapshotRead(ctx, s.store, consts.TableRobots, s.d.RobotList, nil)
}

// member 会员资料读取失败时按免费套餐处理
func (s *robotService) member(ctx context.Context, session model.Session) (entity.User, error) {
	u, err := s.users.UserGetById(ctx, session.UserId)
	if err == nil {
		return u, nil
	}
	if errors.Is(err, gateway.ErrNotFound) {
		return entity.User{}, errors.Wrap(err, ecode.NotFoundErr, "profile not found")
	}
	logger.Warnf("robot: load member %s: %v", session.UserId, err)
	return entity.User{Id: session.UserId, Email: session.Email, Plan: consts.PlanFree, IsActive: true}, nil
}

func (s *robotService) RobotListForMember(ctx context.Context, session model.Session) model.ListRes[model.RobotItem] {
	robots, stale, notice := s.load(ctx)
	lookup := s.plans.PlanLookup(ctx)
	u, err := s.member(ctx, session)
	if err != nil {
		u = entity.User{Plan: consts.PlanFree}
	}

	active := collection.Where(robots, func(r entity.Robot) bool { return r.IsActive })
	active = collection.Sort(active, robotSortKeys["min_plan"], collection.Asc)
	items := make([]model.RobotItem, 0, len(active))
	for _, r := range active {
		items = append(items, model.NewRobotItem(r, u.IsActive && lookup.Allows(u.Plan, r.MinPlan)))
	}
	return model.ListRes[model.RobotItem]{Items: items, Total: len(items), Stale: stale, Notice: notice}
}

func (s *robotService) robot(ctx context.Context, id int64) (entity.Robot, error) {
	r, err := s.d.RobotGetById(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return entity.Robot{}, errors.Wrap(err, ecode.NotFoundErr, "")
		}
		return entity.Robot{}, errors.Wrap(err, ecode.Unknown, consts.StaleNotice)
	}
	if !r.IsActive {
		return entity.Robot{}, errors.WithCode(ecode.NotFoundErr, "")
	}
	return r, nil
}

func (s *robotService) RobotLink(ctx context.Context, session model.Session, robotId int64) (model.RobotLinkRes, error) {
	r, err := s.robot(ctx, robotId)
	if err != nil {
		return model.RobotLinkRes{}, err
	}
	u, err := s.member(ctx, session)
	if err != nil {
		return model.RobotLinkRes{}, err
	}
	if !u.IsActive || !s.plans.PlanLookup(ctx).Allows(u.Plan, r.MinPlan) {
		return model.RobotLinkRes{}, errors.WithCode(ecode.ForbiddenErr, "your plan does not include this robot")
	}

	ticket, exp, err := s.issuer.Issue(r.Id, u.Id)
	if err != nil {
		return model.RobotLinkRes{}, errors.Wrap(err, ecode.Unknown, "")
	}
	return model.RobotLinkRes{URL: s.baseURL + "/api/v1/download/" + ticket, ExpiresAt: exp}, nil
}

func (s *robotService) RobotOpen(ctx context.Context, ticket, ip string) (model.DownloadFile, error) {
	t, err := s.issuer.Open(ticket)
	if err != nil {
		return model.DownloadFile{}, errors.Wrap(err, ecode.TicketErr, "")
	}
	r, err := s.robot(ctx, t.RobotId)
	if err != nil {
		return model.DownloadFile{}, err
	}
	path, err := download.Resolve(s.root, r.FileName)
	if err != nil {
		return model.DownloadFile{}, errors.Wrap(err, ecode.NotFoundErr, "")
	}
	if download.SizeOf(path) == 0 {
		return model.DownloadFile{}, errors.WithCode(ecode.NotFoundErr, "file is not available")
	}

	dl := entity.DownloadLog{Id: s.node.GenSnowID(), UserId: t.UserId, RobotId: r.Id, Ip: ip, CreatedAt: utils.Now()}
	if err := s.d.DownloadLogCreate(ctx, &dl); err != nil {
		logger.Warnf("robot: download log %d for %s: %v", r.Id, t.UserId, err)
	}
	metrics.Downloads.WithLabelValues(r.Name).Inc()
	return model.DownloadFile{Path: path, Name: filepath.Base(path)}, nil
}

func (s *robotService) RobotList(ctx context.Context, req model.ListReq) model.ListRes[entity.Robot] {
	robots, stale, notice := s.load(ctx)
	filtered := collection.Search(robots, req.Search, func(r entity.Robot) []string {
		return []string{r.Name, r.Description, r.Platform, r.FileName}
	})
	key, dir := sortOf(req, "created_at")
	items := collection.Sort(filtered, robotSortKeys.Get(key, "created_at"), dir)
	return model.ListRes[entity.Robot]{Items: items, Total: len(items), Stale: stale, Notice: notice}
}

func (s *robotService) RobotCreate(ctx context.Context, req model.RobotCreateReq) (entity.Robot, error) {
	path, err := download.Resolve(s.root, req.FileName)
	if err != nil {
		return entity.Robot{}, errors.Wrap(err, ecode.ValidateErr, "file_name is invalid")
	}
	r := entity.Robot{
		Id:          s.node.GenSnowID(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Version:     strings.TrimSpace(req.Version),
		Platform:    strings.TrimSpace(req.Platform),
		MinPlan:     req.MinPlan,
		FileName:    req.FileName,
		SizeBytes:   download.SizeOf(path),
		IsActive:    true,
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if err := s.d.RobotCreate(ctx, &r); err != nil {
		return entity.Robot{}, writeErr(err)
	}
	return r, nil
}

func (s *robotService) RobotUpdate(ctx context.Context, id int64, req model.RobotUpdateReq) error {
	patch := map[string]any{}
	setIf(patch, "name", req.Name)
	setIf(patch, "description", req.Description)
	setIf(patch, "version", req.Version)
	setIf(patch, "platform", req.Platform)
	setIf(patch, "min_plan", req.MinPlan)
	setIf(patch, "is_active", req.IsActive)
	if req.FileName != nil {
		path, err := download.Resolve(s.root, *req.FileName)
		if err != nil {
			return errors.Wrap(err, ecode.ValidateErr, "file_name is invalid")
		}
		patch["file_name"] = *req.FileName
		patch["size_bytes"] = download.SizeOf(path)
	}
	if len(patch) == 0 {
		return emptyPatch()
	}
	return writeErr(s.d.RobotUpdate(ctx, id, patch))
}

func (s *robotService) RobotDelete(ctx context.Context, id int64) error {
	return writeErr(s.d.RobotDelete(ctx, id))
}
