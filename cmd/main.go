package main

import (
	"context"
	"log"

	api "robodesk/cmd/robodesk"
	"robodesk/conf"
	"robodesk/internal/dao/query"
	"robodesk/pkg/cache"
	"robodesk/pkg/db"
	"robodesk/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

func main() {
	// 加载配置文件
	if err := conf.LoadConfig("conf/config.yaml"); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	// 未配置驱动时不连接数据库
	var datasource *gorm.DB
	if appCfg.Db.Driver != "" {
		dbCfg := db.NewConfig(appCfg.Db.Driver, appCfg.Db.Username, appCfg.Db.Password,
			appCfg.Db.Host, appCfg.Db.Port, appCfg.Db.DbName)
		dbCfg.SSLMode = appCfg.Db.SSLMode
		var err error
		datasource, err = db.Init(dbCfg)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		// 本地开发时自己建表，其它驱动的表由后端服务维护
		if dbCfg.Driver == db.DriverSQLite {
			for _, m := range query.Models() {
				if err := datasource.AutoMigrate(m); err != nil {
					logger.Fatalf("migrate: %v", err)
				}
			}
		}
	}

	// 初始化redis缓存，失败时使用进程内缓存
	var rc *redis.Client
	if appCfg.Redis.Addr != "" {
		if err := cache.InitRedis(appCfg.Redis); err != nil {
			logger.Warnf("redis unavailable, using in-process cache: %v", err)
		} else {
			rc = cache.GetRedisClient()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srvRouter, closeRouter, err := api.InitRouter(ctx, &appCfg, datasource, rc)
	if err != nil {
		logger.Fatalf("init router: %v", err)
	}

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		cancel()
		err := multierr.Combine(closeRouter(), db.Close(), cache.CloseRedis())
		if err != nil {
			logger.Errorf("release resources: %v", err)
		}
	})
	srv.Run(ctx, srvRouter)
}
