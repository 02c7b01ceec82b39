package service

import (
	"context"
	"sync"
	"testing"

	"robodesk/internal/cache"
	"robodesk/internal/dao/query"
	"robodesk/internal/gateway"
	"robodesk/internal/notify"
	"robodesk/pkg/errors"
	"robodesk/utils/uuid"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNode = uuid.NewNode(7)

func newGateway(t *testing.T) gateway.Gateway {
	t.Helper()
	ds, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := ds.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	models := query.Models()
	for _, m := range models {
		require.NoError(t, ds.AutoMigrate(m))
	}
	return gateway.NewGormGateway(ds, gateway.NewHub("test"), models)
}

func newStore() cache.SnapshotStore {
	return cache.NewMemorySnapshot(32)
}

// 后端不可用时套餐使用默认目录
func offlinePlans(store cache.SnapshotStore) PlanService {
	return NewPlanService(query.NewPlanDao(gateway.NewNullGateway()), store, nil)
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, errors.CodeOf(err), "error: %v", err)
}

type stubCaptcha struct{ code string }

func (s stubCaptcha) Verify(_ context.Context, code string) bool {
	return code != "" && code == s.code
}

type recordNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	done chan struct{}
}

func newRecordNotifier() *recordNotifier {
	return &recordNotifier{done: make(chan struct{}, 8)}
}

func (r *recordNotifier) Notify(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}
