package gateway

import (
	"context"
	"errors"
	"reflect"
	"time"

	"robodesk/internal/metrics"
	"robodesk/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormGateway 通过数据库连接访问后端服务的关系存储
type gormGateway struct {
	ds     *gorm.DB
	hub    *Hub
	models map[string]reflect.Type
}

var _ Gateway = (*gormGateway)(nil)

// NewGormGateway models 登记表对应的实体，用于软删除和自动更新时间
func NewGormGateway(ds *gorm.DB, hub *Hub, models map[string]any) Gateway {
	g := &gormGateway{ds: ds, hub: hub, models: make(map[string]reflect.Type, len(models))}
	for table, m := range models {
		t := reflect.TypeOf(m)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		g.models[table] = t
	}
	return g
}

// model 每次调用创建新的实体，避免并发修改同一个值
func (g *gormGateway) model(table string) any {
	if t, ok := g.models[table]; ok {
		return reflect.New(t).Interface()
	}
	return nil
}

func (g *gormGateway) scope(ctx context.Context, table string) *gorm.DB {
	tx := g.ds.WithContext(ctx).Table(table)
	if m := g.model(table); m != nil {
		tx = tx.Model(m)
	}
	return tx
}

func (g *gormGateway) Select(ctx context.Context, table string, q Query, dest any) error {
	tx := g.ds.WithContext(ctx).Table(table)
	if len(q.Filters) > 0 {
		tx = tx.Where(map[string]interface{}(q.Filters))
	}
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return g.fail(table, "select", err)
	}
	return nil
}

func (g *gormGateway) Insert(ctx context.Context, table string, record any) error {
	if err := g.ds.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		return g.fail(table, "insert", err)
	}
	rec, err := ToRecord(record)
	if err != nil {
		logger.Warnf("gateway: encode %s record: %v", table, err)
	}
	g.publish(Change{Table: table, Type: ChangeInsert, ID: rec["id"], Record: rec})
	return nil
}

func (g *gormGateway) Update(ctx context.Context, table string, id any, patch map[string]any) error {
	res := g.scope(ctx, table).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return g.fail(table, "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	rec, err := g.snapshot(ctx, table, id)
	if err != nil {
		// 读不到更新后的整行时只推送改动的字段
		logger.Warnf("gateway: reload %s %v: %v", table, id, err)
		rec = make(map[string]any, len(patch)+1)
		for k, v := range patch {
			rec[k] = v
		}
		rec["id"] = id
	}
	g.publish(Change{Table: table, Type: ChangeUpdate, ID: id, Record: rec})
	return nil
}

func (g *gormGateway) Delete(ctx context.Context, table string, id any) error {
	value := g.model(table)
	if value == nil {
		value = map[string]interface{}{}
	}
	// 删除前取整行，订阅方按过滤条件匹配的是删除前的内容
	before, err := g.snapshot(ctx, table, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		logger.Warnf("gateway: load %s %v before delete: %v", table, id, err)
		before = map[string]any{"id": id}
	}
	res := g.ds.WithContext(ctx).Table(table).Where("id = ?", id).Delete(value)
	if res.Error != nil {
		return g.fail(table, "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	g.publish(Change{Table: table, Type: ChangeDelete, ID: id, Record: before})
	return nil
}

// snapshot 按主键读出整行
func (g *gormGateway) snapshot(ctx context.Context, table string, id any) (map[string]any, error) {
	tx := g.ds.WithContext(ctx).Table(table).Where("id = ?", id)
	if m := g.model(table); m != nil {
		if err := tx.Take(m).Error; err != nil {
			return nil, err
		}
		return ToRecord(m)
	}
	rec := map[string]any{}
	if err := tx.Take(&rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (g *gormGateway) Subscribe(table string, filter Filter, onChange func(Change)) Subscription {
	return g.hub.Subscribe(table, filter, onChange)
}

func (g *gormGateway) publish(c Change) {
	c.At = time.Now()
	c.Origin = g.hub.Origin()
	g.hub.Publish(c)
}

func (g *gormGateway) fail(table, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	metrics.GatewayErrors.WithLabelValues(table, op).Inc()
	logger.Errorf("gateway: %s %s failed: %v", op, table, err)
	return err
}
