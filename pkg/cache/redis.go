package cache

import (
	"context"
	"time"

	"robodesk/conf"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis 初始化redisClient
func InitRedis(redisCfg conf.RedisConfig) error {
	client := redis.NewClient(&redis.Options{
		DB:              redisCfg.Db,
		Addr:            redisCfg.Addr,
		Password:        redisCfg.Password,
		PoolSize:        redisCfg.PoolSize,
		MinIdleConns:    redisCfg.MinIdleConns,
		ConnMaxIdleTime: time.Duration(redisCfg.IdleTimeout) * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}
	redisClient = client
	return nil
}

// Enabled redis是否可用
func Enabled() bool {
	return redisClient != nil
}

func GetRedisClient() *redis.Client {
	if nil == redisClient {
		panic("Please initialize the Redis client first!")
	}
	return redisClient
}

// 关闭redis client
func CloseRedis() error {
	if nil != redisClient {
		return redisClient.Close()
	}
	return nil
}
