package model

// DashboardRes 管理后台首页的汇总
type DashboardRes struct {
	MRR             float64        `json:"mrr"`
	MonthlyCosts    float64        `json:"monthly_costs"`
	Net             float64        `json:"net"`
	ActiveContracts int            `json:"active_contracts"`
	ActiveUsers     int            `json:"active_users"`
	UsersByPlan     map[string]int `json:"users_by_plan"`
	OpenRequests    int            `json:"open_requests"`
	Stale           bool           `json:"stale"`
	Notices         []string       `json:"notices,omitempty"`
}
