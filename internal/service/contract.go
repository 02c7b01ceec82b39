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
	"robodesk/utils"
	"robodesk/utils/uuid"
)

type ContractService interface {
	ContractList(ctx context.Context, req model.ContractListReq) model.ContractListRes
	ContractCreate(ctx context.Context, req model.ContractCreateReq) (entity.Contract, error)
	ContractUpdate(ctx context.Context, id int64, req model.ContractUpdateReq) error
	ContractDelete(ctx context.Context, id int64) error
	ContractSummary(ctx context.Context) model.ContractSummary
}

type contractService struct {
	d     dao.ContractDao
	store cache.SnapshotStore
	node  *uuid.SnowNode
}

func NewContractService(d dao.ContractDao, store cache.SnapshotStore, node *uuid.SnowNode) ContractService {
	return &contractService{d: d, store: store, node: node}
}

var contractSortKeys = collection.Keys[entity.Contract]{
	"client_name":   collection.Text(func(c entity.Contract) string { return c.ClientName }),
	"monthly_value": collection.Number(func(c entity.Contract) float64 { return c.MonthlyValue }),
	"start_date":    collection.Time(func(c entity.Contract) *time.Time { return c.StartDate.Ptr() }),
	"end_date":      collection.Time(func(c entity.Contract) *time.Time { return c.EndDate.Ptr() }),
	"status":        collection.Rank(func(c entity.Contract) string { return c.Status }, consts.ContractStatuses),
	"created_at":    collection.Time(func(c entity.Contract) *time.Time { return c.CreatedAt.Ptr() }),
}

func contractSearchFields(c entity.Contract) []string {
	return []string{c.ClientName, c.ClientEmail, c.Notes}
}

func (s *contractService) load(ctx context.Context) ([]entity.Contract, bool, string) {
	return snapshotRead(ctx, s.store, consts.TableContracts, s.d.ContractList, nil)
}

func (s *contractService) ContractList(ctx context.Context, req model.ContractListReq) model.ContractListRes {
	contracts, stale, notice := s.load(ctx)

	filtered := collection.Where(collection.Search(contracts, req.Search, contractSearchFields),
		collection.Equals(req.Status, func(c entity.Contract) string { return c.Status }),
		collection.Equals(req.Plan, func(c entity.Contract) string { return c.Plan }),
	)
	key, dir := sortOf(req.ListReq, "created_at")
	items := collection.Sort(filtered, contractSortKeys.Get(key, "created_at"), dir)

	var res model.ContractListRes
	res.Items = items
	res.Total = len(items)
	res.Stale = stale
	res.Notice = notice
	res.Summary = summarizeContracts(contracts)
	res.Summary.Stale = stale
	res.Summary.Notice = notice
	return res
}

func (s *contractService) ContractSummary(ctx context.Context) model.ContractSummary {
	contracts, stale, notice := s.load(ctx)
	sum := summarizeContracts(contracts)
	sum.Stale = stale
	sum.Notice = notice
	return sum
}

func summarizeContracts(contracts []entity.Contract) model.ContractSummary {
	active := func(c entity.Contract) bool { return c.IsActive() }
	value := func(c entity.Contract) float64 { return c.MonthlyValue }

	sum := model.ContractSummary{
		ByStatus: collection.CountBy(contracts, func(c entity.Contract) string { return c.Status }),
		Active:   collection.Count(contracts, active),
		MRR:      collection.Sum(contracts, value, active),
	}
	sum.AnnualProjection = sum.MRR * 12
	if sum.Active > 0 {
		sum.AverageTicket = sum.MRR / float64(sum.Active)
	}
	return sum
}

func (s *contractService) ContractCreate(ctx context.Context, req model.ContractCreateReq) (entity.Contract, error) {
	c := entity.Contract{
		Id:           s.node.GenSnowID(),
		ClientName:   strings.TrimSpace(req.ClientName),
		ClientEmail:  strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		Plan:         req.Plan,
		MonthlyValue: req.MonthlyValue,
		Status:       req.Status,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		PaymentRef:   req.PaymentRef,
		Notes:        req.Notes,
	}
	if req.UserId != "" {
		uid := req.UserId
		c.UserId = &uid
	}
	if c.Status == "" {
		c.Status = consts.ContractPending
	}
	if c.StartDate == nil {
		now := utils.Now()
		c.StartDate = &now
	}
	if err := s.d.ContractCreate(ctx, &c); err != nil {
		return entity.Contract{}, writeErr(err)
	}
	return c, nil
}

func (s *contractService) ContractUpdate(ctx context.Context, id int64, req model.ContractUpdateReq) error {
	patch := map[string]any{}
	setIf(patch, "client_name", req.ClientName)
	setIf(patch, "client_email", req.ClientEmail)
	setIf(patch, "plan", req.Plan)
	setIf(patch, "monthly_value", req.MonthlyValue)
	setIf(patch, "status", req.Status)
	setIf(patch, "start_date", req.StartDate)
	setIf(patch, "end_date", req.EndDate)
	setIf(patch, "payment_ref", req.PaymentRef)
	setIf(patch, "notes", req.Notes)
	if len(patch) == 0 {
		return emptyPatch()
	}
	return writeErr(s.d.ContractUpdate(ctx, id, patch))
}

func (s *contractService) ContractDelete(ctx context.Context, id int64) error {
	return writeErr(s.d.ContractDelete(ctx, id))
}
