package admin

import (
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// @Summary		管理后台首页
// @Description	MRR、本月成本、净收入、会员和需求统计；部分数据来自快照时 stale 为 true
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.DashboardRes}
// @Router			/api/v1/admin/dashboard [get]
func (h *DashboardHandler) Dashboard() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, h.service.Dashboard(ctx))
	}
}
