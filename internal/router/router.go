package router

import (
	"robodesk/internal/handler/admin"
	"robodesk/internal/handler/calculator"
	"robodesk/internal/handler/captcha"
	"robodesk/internal/handler/checkout"
	"robodesk/internal/handler/ping"
	"robodesk/internal/handler/plan"
	"robodesk/internal/handler/realtime"
	"robodesk/internal/handler/robot"
	"robodesk/internal/handler/solution"
	"robodesk/internal/handler/user"
	"robodesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由用到的所有处理器
type Handlers struct {
	Calculator *calculator.CalculatorHandler
	Captcha    *captcha.CaptchaHandler
	Plan       *plan.PlanHandler
	Solution   *solution.SolutionHandler
	User       *user.UserHandler
	Robot      *robot.RobotHandler
	Checkout   *checkout.CheckoutHandler
	Contract   *admin.ContractHandler
	Cost       *admin.CostHandler
	Dashboard  *admin.DashboardHandler
	Realtime   *realtime.Handler
}

type Options struct {
	JwtSecret     string
	AdminRole     string
	RatePerMinute int
	RateBurst     int
	Backend       string // database | offline
}

type ApiRouter struct {
	h   Handlers
	opt Options
}

func NewApiRouter(h Handlers, opt Options) *ApiRouter {
	return &ApiRouter{h: h, opt: opt}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.Use(middleware.Options(), middleware.Secure(), middleware.RequestId(), middleware.Logger, middleware.Metrics())

	g.GET("/ping", ping.Ping(api.opt.Backend))
	g.GET("/metrics", gin.WrapH(promhttp.Handler()))

	base := g.Group("/api/v1", middleware.NoCache())

	base.GET("/plans", api.h.Plan.PlanList())

	calc := base.Group("/calculator")
	{
		calc.POST("/position", api.h.Calculator.Position())
		calc.GET("/instruments", api.h.Calculator.Instruments())
	}

	base.POST("/captcha", middleware.AntiDuplicateMiddleware(), api.h.Captcha.CaptchaGenerate())
	base.POST("/solutions", middleware.RateLimit(api.opt.RatePerMinute, api.opt.RateBurst), api.h.Solution.SolutionSubmit())

	// 票据本身就是凭证
	base.GET("/download/:ticket", api.h.Robot.RobotDownload())

	member := base.Group("", middleware.AuthToken(api.opt.JwtSecret, api.opt.AdminRole))
	{
		member.GET("/me", api.h.User.UserMe())
		member.GET("/robots", api.h.Robot.RobotListForMember())
		member.GET("/robots/:id/link", api.h.Robot.RobotLink())
		member.POST("/checkout/capture", api.h.Checkout.CheckoutCapture())
		member.POST("/checkout/:plan", api.h.Checkout.CheckoutStart())
	}

	ad := member.Group("/admin", middleware.AdminOnly())
	{
		ad.GET("/users", api.h.User.UserList())
		ad.GET("/users/:id", api.h.User.UserGet())
		ad.PUT("/users/:id", api.h.User.UserUpdate())
		ad.DELETE("/users/:id", api.h.User.UserDelete())

		ad.GET("/contracts", api.h.Contract.ContractList())
		ad.GET("/contracts/summary", api.h.Contract.ContractSummary())
		ad.POST("/contracts", api.h.Contract.ContractCreate())
		ad.PUT("/contracts/:id", api.h.Contract.ContractUpdate())
		ad.DELETE("/contracts/:id", api.h.Contract.ContractDelete())

		ad.GET("/costs", api.h.Cost.CostList())
		ad.GET("/costs/summary", api.h.Cost.CostSummary())
		ad.POST("/costs", api.h.Cost.CostCreate())
		ad.PUT("/costs/:id", api.h.Cost.CostUpdate())
		ad.DELETE("/costs/:id", api.h.Cost.CostDelete())

		ad.GET("/solutions", api.h.Solution.SolutionList())
		ad.PUT("/solutions/:id", api.h.Solution.SolutionUpdate())
		ad.DELETE("/solutions/:id", api.h.Solution.SolutionDelete())

		ad.GET("/robots", api.h.Robot.RobotList())
		ad.POST("/robots", api.h.Robot.RobotCreate())
		ad.PUT("/robots/:id", api.h.Robot.RobotUpdate())
		ad.DELETE("/robots/:id", api.h.Robot.RobotDelete())

		ad.GET("/dashboard", api.h.Dashboard.Dashboard())
		ad.GET("/realtime/ws", api.h.Realtime.ServeWS)
	}
}
