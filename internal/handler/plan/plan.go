package plan

import (
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	service service.PlanService
}

func NewPlanHandler(s service.PlanService) *PlanHandler {
	return &PlanHandler{service: s}
}

// @Summary		套餐目录
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.ListRes[entity.Plan]}
// @Router			/api/v1/plans [get]
func (h *PlanHandler) PlanList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, h.service.PlanList(ctx))
	}
}
