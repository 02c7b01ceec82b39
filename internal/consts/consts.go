package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	UserID      = "user_id"
	SessionCtx  = "session_ctx"
	JWTTokenCtx = "token_ctx"

	CaptchaPrefix  = "Captcha_list:"
	SnapshotPrefix = "Snapshot_list:"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24 * 5
)

const (
	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

// 后端服务中的表名
const (
	TableProfiles         = "profiles"
	TableContracts        = "contracts"
	TableCosts            = "costs"
	TableSolutionRequests = "solution_requests"
	TablePlans            = "plans"
	TableRobots           = "robots"
	TableDownloadLogs     = "download_logs"
)

// 套餐代码
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// 合同状态
const (
	ContractActive    = "active"
	ContractPending   = "pending"
	ContractCancelled = "cancelled"
	ContractExpired   = "expired"
)

var ContractStatuses = []string{ContractActive, ContractPending, ContractCancelled, ContractExpired}

// 成本分类
var CostCategories = []string{"infrastructure", "marketing", "software", "personnel", "taxes", "other"}

// 定制需求
const (
	SolutionNew      = "new"
	SolutionInReview = "in_review"
	SolutionQuoted   = "quoted"
	SolutionApproved = "approved"
	SolutionRejected = "rejected"
	SolutionDone     = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var SolutionStatuses = []string{SolutionNew, SolutionInReview, SolutionQuoted, SolutionApproved, SolutionRejected, SolutionDone}

// Priorities 从低到高
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var SolutionCategories = []string{"robot", "indicator", "strategy", "integration", "other"}

// 后端不可用时展示给用户的提示
const (
	StaleNotice   = "could not reach the server, showing the last loaded data"
	OfflineNotice = "could not reach the server, showing sample data"
)
