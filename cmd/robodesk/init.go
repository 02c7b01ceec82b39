package api

import (
	"context"

	"robodesk/conf"
	"robodesk/internal/cache"
	"robodesk/internal/consts"
	"robodesk/internal/dao/query"
	"robodesk/internal/download"
	"robodesk/internal/gateway"
	"robodesk/internal/handler/admin"
	"robodesk/internal/handler/calculator"
	"robodesk/internal/handler/captcha"
	"robodesk/internal/handler/checkout"
	"robodesk/internal/handler/plan"
	"robodesk/internal/handler/realtime"
	"robodesk/internal/handler/robot"
	"robodesk/internal/handler/solution"
	"robodesk/internal/handler/user"
	"robodesk/internal/notify"
	"robodesk/internal/router"
	"robodesk/internal/service"
	"robodesk/pkg/kafka"
	"robodesk/pkg/logger"
	"robodesk/pkg/mail"
	"robodesk/pkg/payment"
	"robodesk/pkg/verification"
	"robodesk/utils/uuid"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// 可以实时订阅的表
var realtimeTables = []string{
	consts.TableProfiles,
	consts.TableContracts,
	consts.TableCosts,
	consts.TableSolutionRequests,
	consts.TableRobots,
}

// InitRouter 组装网关、服务和处理器，返回的 closer 在服务停止后释放资源
func InitRouter(ctx context.Context, cfg *conf.Config, ds *gorm.DB, rc *redis.Client) (Router, func() error, error) {
	var closers []func() error

	hub := gateway.NewHub(uuid.GenUUID16())
	var gw gateway.Gateway
	backend := "offline"
	if ds != nil {
		gw = gateway.NewGormGateway(ds, hub, query.Models())
		backend = "database"
	} else {
		// 没有配置数据库时所有读取都走降级数据
		logger.Warnf("database is not configured, serving fallback data")
		gw = gateway.NewNullGateway()
	}

	if cfg.Kafka.Broker != "" {
		bus := gateway.NewBus(hub,
			kafka.NewKafkaProducer(cfg.Kafka.Broker, cfg.Kafka.Topic),
			kafka.NewKafkaConsumer(cfg.Kafka.Broker),
			cfg.Kafka.Topic, cfg.Kafka.GroupID)
		go func() {
			if err := bus.Run(ctx); err != nil {
				logger.Errorf("bus: %v", err)
			}
		}()
		closers = append(closers, func() error { bus.Close(); return nil })
	}

	var (
		store    cache.SnapshotStore
		capStore verification.Store
	)
	if rc != nil {
		store = cache.NewRedisSnapshot(rc, consts.RedisExrDefault)
		capStore = verification.NewRedisStore(rc)
	} else {
		store = cache.NewMemorySnapshot(64)
		capStore = verification.NewMemoryStore(1024)
	}

	var captchaGen captcha.Generator
	var captchaCheck service.CaptchaVerifier
	if cfg.Captcha.Font != "" {
		c, err := verification.NewCaptcha(cfg.Captcha.Font, capStore)
		if err != nil {
			return nil, nil, err
		}
		captchaGen, captchaCheck = c, c
	} else {
		logger.Warnf("captcha font is not configured, solution requests will be rejected")
		captchaCheck = verification.NewVerifier(capStore)
	}

	issuer, err := download.NewIssuer(cfg.Download.TicketSecret, cfg.Download.TicketTTL)
	if err != nil {
		return nil, nil, err
	}

	var pay service.PaymentGateway
	if cfg.Paypal.Enabled() {
		p, err := payment.NewPayPal(cfg.Paypal)
		if err != nil {
			return nil, nil, err
		}
		pay = p
	}

	node := uuid.NewNode(cfg.NodeId)

	userDao := query.NewUserDao(gw)
	contractDao := query.NewContractDao(gw)

	planSrv := service.NewPlanService(query.NewPlanDao(gw), store, cfg.Plans)
	userSrv := service.NewUserService(userDao, planSrv, store)
	contractSrv := service.NewContractService(contractDao, store, node)
	costSrv := service.NewCostService(query.NewCostDao(gw), store, node)
	solutionSrv := service.NewSolutionService(query.NewSolutionDao(gw), store, node,
		captchaCheck, mail.NewVerifier(), newNotifier(cfg))
	robotSrv := service.NewRobotService(query.NewRobotDao(gw), userDao, planSrv, store, node,
		issuer, cfg.Download.Root, cfg.ExternalURL)
	checkoutSrv := service.NewCheckoutService(pay, contractDao, userDao, planSrv, node, cfg.Paypal.Currency)
	dashboardSrv := service.NewDashboardService(userSrv, contractSrv, costSrv, solutionSrv)

	r := router.NewApiRouter(router.Handlers{
		Calculator: calculator.NewCalculatorHandler(cfg.Calculator.Currency),
		Captcha:    captcha.NewCaptchaHandler(captchaGen),
		Plan:       plan.NewPlanHandler(planSrv),
		Solution:   solution.NewSolutionHandler(solutionSrv),
		User:       user.NewUserHandler(userSrv),
		Robot:      robot.NewRobotHandler(robotSrv),
		Checkout:   checkout.NewCheckoutHandler(checkoutSrv),
		Contract:   admin.NewContractHandler(contractSrv),
		Cost:       admin.NewCostHandler(costSrv),
		Dashboard:  admin.NewDashboardHandler(dashboardSrv),
		Realtime:   realtime.NewHandler(gw, realtimeTables),
	}, router.Options{
		JwtSecret:     cfg.Jwt.Secret,
		AdminRole:     cfg.Jwt.AdminRole,
		RatePerMinute: cfg.RateLimit.PerMinute,
		RateBurst:     cfg.RateLimit.Burst,
		Backend:       backend,
	})

	closer := func() error {
		var err error
		for _, c := range closers {
			err = multierr.Append(err, c())
		}
		return err
	}
	return r, closer, nil
}

// 管理员通知渠道，未配置的渠道跳过
func newNotifier(cfg *conf.Config) notify.Notifier {
	var m notify.Multi
	if notify.MailEnabled(cfg.Email) {
		m = append(m, notify.NewMailNotifier(cfg.Email))
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warnf("telegram notifier disabled: %v", err)
		} else {
			m = append(m, n)
		}
	}
	if cfg.Apple.Apns.KeyFile != "" && len(cfg.Apple.Apns.DeviceTokens) > 0 {
		n, err := notify.NewApnsNotifier(cfg.Apple.Apns)
		if err != nil {
			logger.Warnf("apns notifier disabled: %v", err)
		} else {
			m = append(m, n)
		}
	}
	if len(m) == 0 {
		return notify.Nop{}
	}
	return m
}
