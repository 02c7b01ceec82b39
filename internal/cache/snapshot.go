// Package cache 保存每张表最近一次成功读取的数据，后端不可用时用于降级展示
package cache

import (
	"context"
	"errors"
	"time"

	"robodesk/internal/consts"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
)

type SnapshotStore interface {
	Save(ctx context.Context, key string, v any) error
	// Load 没有快照时返回 false
	Load(ctx context.Context, key string, dest any) (bool, error)
}

type redisSnapshot struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewRedisSnapshot 多实例共享快照
func NewRedisSnapshot(rc *redis.Client, ttl time.Duration) SnapshotStore {
	if ttl <= 0 {
		ttl = consts.RedisExrDefault
	}
	return &redisSnapshot{rc: rc, ttl: ttl}
}

func (s *redisSnapshot) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rc.Set(ctx, consts.SnapshotPrefix+key, data, s.ttl).Err()
}

func (s *redisSnapshot) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.rc.Get(ctx, consts.SnapshotPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}

type memorySnapshot struct {
	cache *lru.Cache
}

// NewMemorySnapshot 没有redis时使用，进程内LRU
func NewMemorySnapshot(size int) SnapshotStore {
	if size <= 0 {
		size = 64
	}
	c, _ := lru.New(size)
	return &memorySnapshot{cache: c}
}

func (s *memorySnapshot) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.cache.Add(key, data)
	return nil
}

func (s *memorySnapshot) Load(_ context.Context, key string, dest any) (bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v.([]byte), dest)
}
