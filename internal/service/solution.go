package service

import (
	"context"
	"strings"
	"time"

	"robodesk/internal/cache"
	"robodesk/internal/collection"
	"robodesk/internal/consts"
	"robodesk/internal/dao"
	"robodesk/internal/model"
	"robodesk/internal/model/entity"
	"robodesk/internal/notify"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/logger"
	"robodesk/pkg/mail"
	"robodesk/utils"
	"robodesk/utils/uuid"

	"github.com/spf13/cast"
)

const notifyTimeout = 15 * time.Second

// CaptchaVerifier 校验图形验证码，验证码只能使用一次
type CaptchaVerifier interface {
	Verify(ctx context.Context, code string) bool
}

// EmailVerifier 校验邮箱地址
type EmailVerifier interface {
	VerifierEmail(email string) error
}

type SolutionService interface {
	// 访客提交定制需求
	SolutionSubmit(ctx context.Context, req model.SolutionSubmitReq) (model.SolutionSubmitRes, error)
	SolutionList(ctx context.Context, req model.SolutionListReq) model.SolutionListRes
	SolutionUpdate(ctx context.Context, id int64, req model.SolutionUpdateReq) error
	SolutionDelete(ctx context.Context, id int64) error
	SolutionSummary(ctx context.Context) (model.SolutionSummary, bool, string)
}

type solutionService struct {
	d        dao.SolutionDao
	store    cache.SnapshotStore
	node     *uuid.SnowNode
	captcha  CaptchaVerifier
	emails   EmailVerifier
	notifier notify.Notifier
}

func NewSolutionService(d dao.SolutionDao, store cache.SnapshotStore, node *uuid.SnowNode,
	captcha CaptchaVerifier, emails EmailVerifier, notifier notify.Notifier) SolutionService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &solutionService{
		d:        d,
		store:    store,
		node:     node,
		captcha:  captcha,
		emails:   emails,
		notifier: notifier,
	}
}

var solutionSortKeys = collection.Keys[entity.SolutionRequest]{
	"created_at": collection.Time(func(s entity.SolutionRequest) *time.Time { return s.CreatedAt.Ptr() }),
	"name":       collection.Text(func(s entity.SolutionRequest) string { return s.Name }),
	"budget":     collection.Number(func(s entity.SolutionRequest) float64 { return s.Budget }),
	"status":     collection.Rank(func(s entity.SolutionRequest) string { return s.Status }, consts.SolutionStatuses),
	"priority":   collection.Rank(func(s entity.SolutionRequest) string { return s.Priority }, consts.Priorities),
}

func solutionSearchFields(s entity.SolutionRequest) []string {
	return []string{s.Name, s.Email, s.Company, s.Description}
}

func (s *solutionService) SolutionSubmit(ctx context.Context, req model.SolutionSubmitReq) (model.SolutionSubmitRes, error) {
	if s.captcha == nil || !s.captcha.Verify(ctx, req.Captcha) {
		return model.SolutionSubmitRes{}, errors.WithCode(ecode.CaptchaErr, "")
	}
	if s.emails != nil {
		if err := s.emails.VerifierEmail(req.Email); err != nil {
			return model.SolutionSubmitRes{}, errors.Wrap(err, ecode.ValidateErr, err.Error())
		}
	}

	r := entity.SolutionRequest{
		Id:          s.node.GenSnowID(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Company:     strings.TrimSpace(req.Company),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Budget:      req.Budget,
		Status:      consts.SolutionNew,
		Priority:    consts.PriorityMedium,
		CreatedAt:   utils.Now(),
	}
	if err := s.d.SolutionCreate(ctx, &r); err != nil {
		return model.SolutionSubmitRes{}, writeErr(err)
	}

	go s.notify(r)
	return model.SolutionSubmitRes{Id: r.Id, Status: r.Status}, nil
}

// notify 与请求的生命周期无关，使用独立的超时
func (s *solutionService) notify(r entity.SolutionRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	msg := notify.Message{
		Title: "New solution request from " + r.Name,
		Body:  r.Description,
		Fields: map[string]string{
			"email":    utils.MaskEmail(r.Email),
			"company":  r.Company,
			"category": r.Category,
			"budget":   cast.ToString(r.Budget),
			"id":       cast.ToString(r.Id),
		},
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		logger.Warnf("solution: notify admins about %d: %v", r.Id, err)
	}
}

func (s *solutionService) load(ctx context.Context) ([]entity.SolutionRequest, bool, string) {
	return snapshotRead(ctx, s.store, consts.TableSolutionRequests, s.d.SolutionList, nil)
}

func (s *solutionService) SolutionList(ctx context.Context, req model.SolutionListReq) model.SolutionListRes {
	requests, stale, notice := s.load(ctx)

	filtered := collection.Where(collection.Search(requests, req.Search, solutionSearchFields),
		collection.Equals(req.Status, func(r entity.SolutionRequest) string { return r.Status }),
		collection.Equals(req.Priority, func(r entity.SolutionRequest) string { return r.Priority }),
		collection.Equals(req.Category, func(r entity.SolutionRequest) string { return r.Category }),
		openOnly(req.ShowClosed, req.Status),
	)
	key, dir := sortOf(req.ListReq, "created_at")
	items := collection.Sort(filtered, solutionSortKeys.Get(key, "created_at"), dir)

	var res model.SolutionListRes
	res.Items = items
	res.Total = len(items)
	res.Stale = stale
	res.Notice = notice
	res.Summary = summarizeSolutions(requests)
	return res
}

// openOnly 默认隐藏已关闭的需求，按状态过滤时以状态为准
func openOnly(showClosed bool, status string) collection.Predicate[entity.SolutionRequest] {
	if showClosed || (status != "" && status != collection.All) {
		return nil
	}
	return func(r entity.SolutionRequest) bool { return !r.IsClosed() }
}

func (s *solutionService) SolutionSummary(ctx context.Context) (model.SolutionSummary, bool, string) {
	requests, stale, notice := s.load(ctx)
	return summarizeSolutions(requests), stale, notice
}

func summarizeSolutions(requests []entity.SolutionRequest) model.SolutionSummary {
	return model.SolutionSummary{
		ByStatus:   collection.CountBy(requests, func(r entity.SolutionRequest) string { return r.Status }),
		ByPriority: collection.CountBy(requests, func(r entity.SolutionRequest) string { return r.Priority }),
		Open:       collection.Count(requests, func(r entity.SolutionRequest) bool { return !r.IsClosed() }),
	}
}

func (s *solutionService) SolutionUpdate(ctx context.Context, id int64, req model.SolutionUpdateReq) error {
	patch := map[string]any{}
	setIf(patch, "status", req.Status)
	setIf(patch, "priority", req.Priority)
	setIf(patch, "admin_notes", req.AdminNotes)
	if len(patch) == 0 {
		return emptyPatch()
	}
	return writeErr(s.d.SolutionUpdate(ctx, id, patch))
}

func (s *solutionService) SolutionDelete(ctx context.Context, id int64) error {
	return writeErr(s.d.SolutionDelete(ctx, id))
}

var _ EmailVerifier = (*mail.Verifier)(nil)
