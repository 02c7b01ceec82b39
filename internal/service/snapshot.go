package service

import (
	"context"
	"time"

	"robodesk/internal/cache"
	"robodesk/internal/consts"
	"robodesk/internal/gateway"
	"robodesk/internal/metrics"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/logger"
)

// snapshotRead 读取成功时更新快照；失败时依次使用快照、fallback、空列表，并标记为过期
func snapshotRead[T any](ctx context.Context, store cache.SnapshotStore, table string, load func(context.Context) ([]T, error), fallback []T) (items []T, stale bool, notice string) {
	items, err := load(ctx)
	if err == nil {
		if items == nil {
			items = []T{}
		}
		if serr := store.Save(ctx, table, items); serr != nil {
			logger.Warnf("snapshot: save %s: %v", table, serr)
		}
		return items, false, ""
	}

	metrics.SnapshotFallbacks.WithLabelValues(table).Inc()
	if !errors.Is(err, gateway.ErrNotConfigured) {
		logger.Warnf("snapshot: load %s failed, serving fallback: %v", table, err)
	}

	var cached []T
	if ok, lerr := store.Load(ctx, table, &cached); lerr == nil && ok {
		return cached, true, consts.StaleNotice
	} else if lerr != nil {
		logger.Warnf("snapshot: load cached %s: %v", table, lerr)
	}
	if len(fallback) > 0 {
		return append([]T(nil), fallback...), true, consts.OfflineNotice
	}
	return []T{}, true, consts.StaleNotice
}

// writeErr 写操作不降级，返回给用户可见的错误
func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gateway.ErrNotFound) {
		return errors.Wrap(err, ecode.NotFoundErr, "")
	}
	return errors.Wrap(err, ecode.SaveErr, "")
}

// setIf 只把非nil的字段放进patch
func setIf[T any](patch map[string]any, column string, v *T) {
	if v != nil {
		patch[column] = *v
	}
}

func emptyPatch() error {
	return errors.WithCode(ecode.ValidateErr, "nothing to update")
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
